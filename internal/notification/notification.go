package notification

import (
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
)

// Table is the name reported in change events.
const Table = "notifications"

type Type string

const (
	TypeMessage             Type = "message"
	TypeInvoicePaid         Type = "invoice_paid"
	TypePromoPaid           Type = "promo_paid"
	TypeDocumentMatch       Type = "document_match"
	TypeDocumentApproved    Type = "document_approved"
	TypeSubscriptionExpired Type = "subscription_expired"
	TypeCampaign            Type = "campaign"
	TypeSystem              Type = "system"
)

// Tone is the sound a client plays when a notification arrives.
type Tone string

const (
	ToneChime Tone = "chime"
	ToneCash  Tone = "cash"
	ToneAlert Tone = "alert"
	ToneSoft  Tone = "soft"
)

var tones = map[Type]Tone{
	TypeMessage:             ToneChime,
	TypeInvoicePaid:         ToneCash,
	TypePromoPaid:           ToneCash,
	TypeDocumentMatch:       ToneAlert,
	TypeDocumentApproved:    ToneChime,
	TypeSubscriptionExpired: ToneAlert,
	TypeCampaign:            ToneSoft,
	TypeSystem:              ToneSoft,
}

// ToneFor returns the tone of t. Unknown types get ToneSoft.
func ToneFor(t Type) Tone {
	if tone, ok := tones[t]; ok {
		return tone
	}
	return ToneSoft
}

type Notification struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Type      Type       `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Link      string     `json:"link,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (n *Notification) Tone() Tone {
	return ToneFor(n.Type)
}

func (n *Notification) Unread() bool {
	return n.ReadAt == nil
}

type Module struct {
	svc     *Service
	handler *Handler
}

func (m *Module) Service() *Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(dbExec db.Executor, pub realtime.Publisher) *Module {
	svc := NewService(NewRepository(dbExec), pub)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
