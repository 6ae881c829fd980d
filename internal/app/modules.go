package app

import (
	"github.com/ferdiebergado/finderid/internal/auth"
	"github.com/ferdiebergado/finderid/internal/campaign"
	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/document"
	"github.com/ferdiebergado/finderid/internal/invoice"
	"github.com/ferdiebergado/finderid/internal/loyalty"
	"github.com/ferdiebergado/finderid/internal/mcard"
	"github.com/ferdiebergado/finderid/internal/message"
	"github.com/ferdiebergado/finderid/internal/notification"
	"github.com/ferdiebergado/finderid/internal/promo"
	"github.com/ferdiebergado/finderid/internal/subscription"
	"github.com/ferdiebergado/finderid/internal/user"
)

type Modules struct {
	User         *user.Module
	Auth         *auth.Module
	Notification *notification.Module
	Subscription *subscription.Module
	Promo        *promo.Module
	Loyalty      *loyalty.Module
	Invoice      *invoice.Module
	Document     *document.Module
	MCard        *mcard.Module
	Message      *message.Module
	Campaign     *campaign.Module
}

// NewModules wires every feature module. Notifications publish through p.Publisher() and every
// other module notifies through the notification service.
func NewModules(cfg *config.Config, p *Provider) *Modules {
	users := user.NewModule(p.DB)
	notifications := notification.NewModule(p.DB, p.Publisher())
	notifier := notifications.Service()

	subs := subscription.NewModule(p.DB, cfg.Subscription, notifier)
	promos := promo.NewModule(p.DB, cfg.Promo, notifier)
	points := loyalty.NewModule(p.DB, cfg.Loyalty)

	return &Modules{
		User: users,
		Auth: auth.NewModule(&auth.Provider{
			Cfg:    cfg,
			DB:     p.DB,
			Hasher: p.Hasher,
			Signer: p.Signer,
			Mailer: p.Mailer,
			Baker:  p.CSRFBaker,
			Users:  users.Service(),
		}),
		Notification: notifications,
		Subscription: subs,
		Promo:        promos,
		Loyalty:      points,
		Invoice: invoice.NewModule(p.DB, invoice.Deps{
			TxMgr:         p.TxMgr,
			Subscriptions: subs.Service(),
			Promos:        promos.Service(),
			Loyalty:       points.Service(),
			Notifier:      notifier,
		}),
		Document: document.NewModule(p.DB, notifier),
		MCard:    mcard.NewModule(p.DB),
		Message:  message.NewModule(p.DB, users.Service(), p.Publisher(), notifier),
		Campaign: campaign.NewModule(p.DB, cfg.Campaign, users.Service(), p.Mailer),
	}
}
