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
	"github.com/ferdiebergado/finderid/internal/middleware"
	"github.com/ferdiebergado/finderid/internal/promo"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"github.com/ferdiebergado/finderid/internal/platform/router"
	"github.com/ferdiebergado/finderid/internal/platform/validation"
)

// body decodes and validates a JSON payload of type T.
func body[T any](v validation.Validator, maxBytes int64) []router.Middleware {
	return []router.Middleware{
		middleware.CheckContentType,
		middleware.DecodePayload[T](maxBytes),
		middleware.ValidateInput[T](v),
	}
}

func mountRoutes(r router.Router, cfg *config.Config, p *Provider, m *Modules) {
	maxBytes := cfg.Server.MaxBodyBytes
	access := auth.AccessAudience(cfg)
	requireToken := auth.RequireToken(p.Signer, access)
	requireAdmin := auth.RequireAdmin(m.User.Service())

	mountAuthRoutes(r, cfg, p, m.Auth.Handler())

	rt := realtime.NewHandler(p.Hub, p.Signer, access, cfg.Realtime, cfg.Server.AllowedOrigin)
	r.Get("/realtime", rt.Subscribe)

	// Public lookups.
	r.Get("/plans", m.Subscription.Handler().Plans)
	r.Get("/cards/search", m.MCard.Handler().Search)
	r.Get("/cards/{slug}", m.MCard.Handler().View)
	r.Get("/documents/search", m.Document.Handler().Search)

	r.Group("/me", func(gr router.Router) {
		gr.Get("/", m.User.Handler().Me)
		gr.Get("/subscription", m.Subscription.Handler().Mine)
	}, requireToken)

	r.Group("/mcards", func(gr router.Router) {
		h := m.MCard.Handler()
		gr.Get("/", h.Mine)
		gr.Post("/", h.Create, body[mcard.CardRequest](p.Validator, maxBytes)...)
		gr.Put("/{id}", h.Update, body[mcard.CardRequest](p.Validator, maxBytes)...)
		gr.Delete("/{id}", h.Delete)
	}, requireToken)

	r.Group("/documents", func(gr router.Router) {
		h := m.Document.Handler()
		gr.Get("/", h.Mine)
		gr.Post("/", h.Report, body[document.ReportRequest](p.Validator, maxBytes)...)
		gr.Post("/{id}/returned", h.MarkReturned)
	}, requireToken)

	r.Group("/invoices", func(gr router.Router) {
		h := m.Invoice.Handler()
		gr.Get("/", h.Mine)
		gr.Post("/", h.Create, body[invoice.CreateRequest](p.Validator, maxBytes)...)
		gr.Post("/{id}/cancel", h.Cancel)
	}, requireToken)

	r.Group("/promos", func(gr router.Router) {
		h := m.Promo.Handler()
		gr.Get("/", h.Mine)
		gr.Post("/", h.Create, body[promo.CreateRequest](p.Validator, maxBytes)...)
		gr.Get("/{code}", h.Validate)
	}, requireToken)

	r.Group("/loyalty", func(gr router.Router) {
		h := m.Loyalty.Handler()
		gr.Get("/tasks", h.Tasks)
		gr.Post("/tasks/{id}/complete", h.Complete)
		gr.Get("/balance", h.Balance)
	}, requireToken)

	r.Group("/messages", func(gr router.Router) {
		h := m.Message.Handler()
		gr.Get("/", h.Conversations)
		gr.Post("/", h.Send, body[message.SendRequest](p.Validator, maxBytes)...)
		gr.Get("/{userID}", h.Thread)
		gr.Post("/{userID}/read", h.MarkRead)
	}, requireToken)

	r.Group("/notifications", func(gr router.Router) {
		h := m.Notification.Handler()
		gr.Get("/", h.List)
		gr.Get("/unread", h.Unread)
		gr.Post("/read", h.MarkAllRead)
		gr.Post("/{id}/read", h.MarkRead)
		gr.Delete("/{id}", h.Delete)
	}, requireToken)

	mountAdminRoutes(r, p, m, maxBytes, requireToken, requireAdmin)
}

func mountAuthRoutes(r router.Router, cfg *config.Config, p *Provider, h *auth.Handler) {
	maxBytes := cfg.Server.MaxBodyBytes

	r.Group("/auth", func(gr router.Router) {
		gr.Post("/register", h.Register, body[auth.RegisterRequest](p.Validator, maxBytes)...)
		gr.Post("/login", h.Login, body[auth.LoginRequest](p.Validator, maxBytes)...)
		gr.Get("/verify", h.Verify, auth.VerifyToken(p.Signer, auth.VerifyAudience(cfg)))
		gr.Post("/resend", h.ResendVerification, body[auth.EmailRequest](p.Validator, maxBytes)...)
		gr.Post("/refresh", h.Refresh, middleware.CSRFGuard(cfg.CSRF, p.CSRFBaker))
		gr.Post("/logout", h.Logout, middleware.CSRFGuard(cfg.CSRF, p.CSRFBaker))
		gr.Post("/forgot", h.ForgotPassword, body[auth.EmailRequest](p.Validator, maxBytes)...)
		gr.Post("/reset", h.ResetPassword,
			append([]router.Middleware{auth.VerifyToken(p.Signer, auth.ResetAudience(cfg))},
				body[auth.ResetPasswordRequest](p.Validator, maxBytes)...)...)
	})
}

func mountAdminRoutes(r router.Router, p *Provider, m *Modules, maxBytes int64, requireToken, requireAdmin router.Middleware) {
	r.Group("/admin", func(gr router.Router) {
		gr.Get("/users", m.User.Handler().List)

		docs := m.Document.Handler()
		gr.Get("/documents/pending", docs.Pending)
		gr.Post("/documents/{id}/approve", docs.Approve)
		gr.Post("/documents/{id}/reject", docs.Reject)

		invoices := m.Invoice.Handler()
		gr.Get("/invoices/pending", invoices.Pending)
		gr.Post("/invoices/{id}/confirm", invoices.Confirm, body[invoice.ConfirmRequest](p.Validator, maxBytes)...)

		promos := m.Promo.Handler()
		gr.Get("/promos", promos.List)
		gr.Post("/promos/{id}/deactivate", promos.Deactivate)
		gr.Post("/promos/{id}/paid", promos.MarkPaid)

		tasks := m.Loyalty.Handler()
		gr.Post("/loyalty/tasks", tasks.CreateTask, body[loyalty.CreateTaskRequest](p.Validator, maxBytes)...)
		gr.Post("/loyalty/tasks/{id}/deactivate", tasks.DeactivateTask)

		campaigns := m.Campaign.Handler()
		gr.Get("/campaigns", campaigns.List)
		gr.Post("/campaigns", campaigns.Create, body[campaign.CreateRequest](p.Validator, maxBytes)...)
		gr.Get("/campaigns/runs", campaigns.Runs)
		gr.Post("/campaigns/bulk", campaigns.SendBulk, body[campaign.BulkRequest](p.Validator, maxBytes)...)
		gr.Post("/campaigns/{id}/send", campaigns.Send)
	}, requireToken, requireAdmin)
}
