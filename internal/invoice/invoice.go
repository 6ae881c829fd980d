package invoice

import (
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

type Invoice struct {
	ID         string
	Number     string
	UserID     string
	Plan       string
	Amount     int64
	Currency   string
	PaymentRef string
	PromoCode  *string
	Status     Status
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewNumber returns an invoice number of the form INV-YYYYMMDD-XXXXXX.
func NewNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:6]
	return "INV-" + now.UTC().Format("20060102") + "-" + suffix
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

func NewModule(dbExec db.Executor, deps Deps) *Module {
	svc := NewService(NewRepository(dbExec), deps)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
