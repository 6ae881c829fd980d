package subscription

import (
	"context"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

type SubscriptionService interface {
	Get(ctx context.Context, userID string) (*View, error)
	Plans() []PlanInfo
}

type Handler struct {
	svc SubscriptionService
}

func NewHandler(svc SubscriptionService) *Handler {
	return &Handler{svc: svc}
}

type StatusResponse struct {
	Plan          string     `json:"plan,omitempty"`
	Status        Status     `json:"status"`
	StartedAt     *time.Time `json:"started_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	DaysRemaining int        `json:"days_remaining"`
}

type PlanData struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Days     int    `json:"days"`
}

type PlansResponse struct {
	Plans []PlanData `json:"plans"`
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	view, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	res := &StatusResponse{
		Status:        view.Status,
		DaysRemaining: view.DaysRemaining,
	}
	if sub := view.Subscription; sub != nil {
		res.Plan = sub.Plan
		res.StartedAt = &sub.StartedAt
		res.ExpiresAt = &sub.ExpiresAt
	}

	web.RespondOK(w, nil, res)
}

func (h *Handler) Plans(w http.ResponseWriter, _ *http.Request) {
	plans := h.svc.Plans()
	data := make([]PlanData, 0, len(plans))
	for _, p := range plans {
		data = append(data, PlanData{
			Name:     p.Name,
			Price:    p.Price,
			Currency: p.Currency,
			Days:     int(p.Duration / day),
		})
	}

	web.RespondOK(w, nil, &PlansResponse{Plans: data})
}
