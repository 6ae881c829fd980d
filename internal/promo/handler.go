package promo

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

type PromoService interface {
	Create(ctx context.Context, userID, code string) (*Promo, error)
	ListMine(ctx context.Context, userID string) ([]Promo, error)
	List(ctx context.Context) ([]Promo, error)
	Validate(ctx context.Context, userID, code string) (*Promo, error)
	Deactivate(ctx context.Context, id string) (*Promo, error)
	MarkPaid(ctx context.Context, id string) (*Promo, error)
}

type Handler struct {
	svc PromoService
	now func() time.Time
}

func NewHandler(svc PromoService) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

type CreateRequest struct {
	Code string `json:"code,omitempty" validate:"required,alphanum,min=4,max=20"`
}

type PromoData struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Reward    int64      `json:"reward"`
	Uses      int64      `json:"uses"`
	Payout    int64      `json:"payout"`
	Status    Status     `json:"status"`
	PaidAt    *time.Time `json:"paid_at,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (h *Handler) toData(p *Promo) PromoData {
	return PromoData{
		ID:        p.ID,
		Code:      p.Code,
		Reward:    p.Reward,
		Uses:      p.Uses,
		Payout:    p.Payout(),
		Status:    p.Status(h.now()),
		PaidAt:    p.PaidAt,
		ExpiresAt: p.ExpiresAt,
		CreatedAt: p.CreatedAt,
	}
}

type ListResponse struct {
	Promos []PromoData `json:"promos"`
}

type ValidateResponse struct {
	Code   string `json:"code"`
	Status Status `json:"status"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CreateRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	p, err := h.svc.Create(r.Context(), userID, req.Code)
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Promo code created."
	data := h.toData(p)
	web.RespondCreated(w, &msg, &data)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	promos, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	h.respondList(w, promos)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	promos, err := h.svc.List(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	h.respondList(w, promos)
}

func (h *Handler) respondList(w http.ResponseWriter, promos []Promo) {
	data := make([]PromoData, 0, len(promos))
	for _, p := range promos {
		data = append(data, h.toData(&p))
	}
	web.RespondOK(w, nil, &ListResponse{Promos: data})
}

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	p, err := h.svc.Validate(r.Context(), userID, r.PathValue("code"))
	if err != nil {
		respondErr(w, err)
		return
	}

	web.RespondOK(w, nil, &ValidateResponse{Code: p.Code, Status: StatusActive})
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Deactivate(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	data := h.toData(p)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.MarkPaid(r.Context(), r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Promo payout recorded."
	data := h.toData(p)
	web.RespondOK(w, &msg, &data)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, "Promo code not found.", nil)
	case errors.Is(err, ErrDuplicate):
		web.RespondConflict(w, err, "Promo code already taken.", map[string]string{"code": "already taken"})
	case errors.Is(err, ErrOwnCode):
		web.RespondUnprocessableEntity(w, err, "You cannot use your own promo code.", nil)
	case errors.Is(err, ErrUnusable):
		web.RespondUnprocessableEntity(w, err, "Promo code is no longer valid.", nil)
	case errors.Is(err, ErrTooManyCodes):
		web.RespondConflict(w, err, "You have reached the limit of active promo codes.", nil)
	case errors.Is(err, ErrAlreadyPaid):
		web.RespondConflict(w, err, "Promo code was already paid out.", nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
