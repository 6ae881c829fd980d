package auth

import (
	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/email"
	"github.com/ferdiebergado/finderid/internal/platform/hash"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
)

type Provider struct {
	Cfg    *config.Config
	DB     db.Executor
	Hasher hash.Hasher
	Signer jwt.Signer
	Mailer email.Mailer
	Baker  security.Baker
	Users  UserService
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

func NewModule(provider *Provider) *Module {
	repo := NewRepository(provider.DB)
	svc := NewService(repo, provider)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc, provider),
	}
}

// AccessAudience is the audience of access tokens. Realtime subscriptions use it as well.
func AccessAudience(cfg *config.Config) string {
	return cfg.JWT.Issuer
}

func refreshAudience(cfg *config.Config) string {
	return cfg.JWT.Issuer + "/refresh"
}

// VerifyAudience is the audience of e-mail verification links.
func VerifyAudience(cfg *config.Config) string {
	return cfg.Server.URL + "/auth/verify"
}

// ResetAudience is the audience of password reset links.
func ResetAudience(cfg *config.Config) string {
	return cfg.Server.URL + "/auth/reset"
}
