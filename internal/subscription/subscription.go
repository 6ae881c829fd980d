package subscription

import (
	"math"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type Status string

const (
	StatusNone     Status = "none"
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring"
	StatusActive   Status = "active"
)

const (
	day                   = 24 * time.Hour
	defaultExpiringWindow = 7 * day
)

type Subscription struct {
	UserID           string     `json:"user_id"`
	Plan             string     `json:"plan"`
	StartedAt        time.Time  `json:"started_at"`
	ExpiresAt        time.Time  `json:"expires_at"`
	ExpiryNotifiedAt *time.Time `json:"-"`
}

// ComputeStatus compares the expiry of sub with now. A nil sub has no subscription.
func ComputeStatus(sub *Subscription, now time.Time, window time.Duration) Status {
	if sub == nil {
		return StatusNone
	}

	if window <= 0 {
		window = defaultExpiringWindow
	}

	remaining := sub.ExpiresAt.Sub(now)
	switch {
	case remaining <= 0:
		return StatusExpired
	case remaining < window:
		return StatusExpiring
	default:
		return StatusActive
	}
}

// DaysRemaining counts whole days until expiresAt, rounding partial days up. It is never negative.
func DaysRemaining(expiresAt, now time.Time) int {
	remaining := expiresAt.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(float64(remaining) / float64(day)))
}

// extendFrom returns the start of the next period: the current expiry when it lies in the
// future, otherwise now.
func extendFrom(sub *Subscription, now time.Time) time.Time {
	if sub != nil && sub.ExpiresAt.After(now) {
		return sub.ExpiresAt
	}
	return now
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

func NewModule(dbExec db.Executor, cfg *config.Subscription, notifier Notifier) *Module {
	svc := NewService(NewRepository(dbExec), cfg, notifier)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
