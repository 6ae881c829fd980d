package document

import (
	"strings"
	"time"
	"unicode"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Counterpart is the kind of report that matches k.
func (k Kind) Counterpart() Kind {
	if k == KindLost {
		return KindFound
	}
	return KindLost
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
	StatusReturned Status = "returned"
)

type Document struct {
	ID               string
	ReporterID       string
	Kind             Kind
	DocType          string
	DocNumber        string
	NormalizedNumber string
	HolderName       string
	Location         string
	Contact          string
	Description      string
	Status           Status
	ReviewedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NormalizeNumber upper-cases number and strips whitespace and dashes so that "ab-12 34" and
// "AB1234" compare equal.
func NormalizeNumber(number string) string {
	var b strings.Builder
	b.Grow(len(number))
	for _, r := range number {
		if unicode.IsSpace(r) || r == '-' {
			continue
		}
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
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

func NewModule(dbExec db.Executor, notifier Notifier) *Module {
	svc := NewService(NewRepository(dbExec), notifier)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
