package promo

import (
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
	StatusPaid     Status = "paid"
)

type Promo struct {
	ID        string
	UserID    string
	Code      string
	Reward    int64
	Uses      int64
	Active    bool
	Paid      bool
	PaidAt    *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status evaluates the code at now. A paid code stays paid even when it is also inactive or
// expired.
func (p *Promo) Status(now time.Time) Status {
	switch {
	case p.Paid:
		return StatusPaid
	case !p.Active:
		return StatusInactive
	case p.ExpiresAt != nil && !now.Before(*p.ExpiresAt):
		return StatusExpired
	default:
		return StatusActive
	}
}

// Payout is the amount owed to the owner for the uses recorded so far.
func (p *Promo) Payout() int64 {
	if p.Paid {
		return 0
	}
	return p.Uses * p.Reward
}

// NormalizeCode upper-cases code and trims surrounding whitespace.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
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

func NewModule(dbExec db.Executor, cfg *config.Promo, notifier Notifier) *Module {
	svc := NewService(NewRepository(dbExec), cfg, notifier)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
