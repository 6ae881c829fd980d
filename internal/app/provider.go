package app

import (
	"database/sql"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/email"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"github.com/ferdiebergado/finderid/internal/platform/validation"
)

// hubBuffer is the number of change events queued for the hub. Publish drops events once
// the queue is full.
const hubBuffer = 256

// Provider holds the infrastructure shared by every module.
type Provider struct {
	DB        *sql.DB
	Signer    jwt.Signer
	Mailer    email.Mailer
	Validator validation.Validator
	Hasher    hash.Hasher
	Router    router.Router
	CSRFBaker security.Baker
	TxMgr     db.TxManager
	Hub       *realtime.Hub
	// Events overrides where modules publish change events. Nil means the hub.
	Events realtime.Publisher
}

// Publisher returns the sink for change events raised by the modules.
//
//nolint:ireturn // modules depend on the Publisher abstraction.
func (p *Provider) Publisher() realtime.Publisher {
	if p.Events != nil {
		return p.Events
	}
	return p.Hub
}

func NewProvider(cfg *config.Config, dbConn *sql.DB) (*Provider, error) {
	mailer, err := email.NewSMTPMailer(cfg.SMTP, cfg.Email)
	if err != nil {
		return nil, fmt.Errorf("new smtp mailer: %w", err)
	}

	return &Provider{
		DB:        dbConn,
		Signer:    jwt.NewGolangJWTSigner(cfg.JWT, cfg.App.Key),
		Mailer:    mailer,
		Validator: validation.NewGoPlaygroundValidator(),
		Hasher:    hash.NewArgon2Hasher(cfg.Argon2, cfg.App.Key),
		Router:    router.NewGoexpressRouter(),
		CSRFBaker: security.NewCSRFCookieBaker(cfg.CSRF, cfg.App.Key),
		TxMgr:     db.NewSQLTxManager(dbConn),
		Hub:       realtime.NewHub(hubBuffer),
	}, nil
}
