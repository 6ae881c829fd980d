package loyalty

import (
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/db"
)

// TaskFirstPayment is awarded once, when the user's first invoice is paid.
const TaskFirstPayment = "first_payment"

type Task struct {
	ID        string
	Key       string
	Title     string
	Points    int
	Active    bool
	System    bool
	CreatedAt time.Time
}

// TaskState is a task as seen by one user.
type TaskState struct {
	Task
	Completed   bool
	CompletedAt *time.Time
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

func NewModule(dbExec db.Executor, cfg *config.Loyalty) *Module {
	svc := NewService(NewRepository(dbExec), cfg)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
