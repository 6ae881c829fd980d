package user

import (
	"encoding/json"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID           string
	Email        string
	DisplayName  string
	Role         Role
	PasswordHash string
	VerifiedAt   *time.Time
	Metadata     json.RawMessage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Module struct {
	svc     *Service
	handler *Handler
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func (m *Module) Service() *Service {
	return m.svc
}

func NewModule(dbExec db.Executor) *Module {
	repo := NewRepository(dbExec)
	svc := NewService(repo)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
