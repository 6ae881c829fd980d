package invoice

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/promo"
	"github.com/ferdiebergado/finderid/internal/subscription"
	"github.com/ferdiebergado/finderid/internal/user"
)

type InvoiceService interface {
	Create(ctx context.Context, userID string, params CreateInvoiceParams) (*Invoice, error)
	ListMine(ctx context.Context, userID string) ([]Invoice, error)
	ListPending(ctx context.Context) ([]Invoice, error)
	Cancel(ctx context.Context, userID, id string) (*Invoice, error)
	Confirm(ctx context.Context, id, paymentRef string) (*Invoice, error)
}

type Handler struct {
	svc InvoiceService
}

func NewHandler(svc InvoiceService) *Handler {
	return &Handler{svc: svc}
}

type CreateRequest struct {
	Plan      string `json:"plan,omitempty" validate:"required,oneof=basic pro business"`
	PromoCode string `json:"promo_code,omitempty" validate:"omitempty,alphanum,max=20"`
}

type ConfirmRequest struct {
	PaymentRef string `json:"payment_ref,omitempty" validate:"required,max=100"`
}

type InvoiceData struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	UserID     string     `json:"user_id"`
	Plan       string     `json:"plan"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	PaymentRef string     `json:"payment_ref,omitempty"`
	PromoCode  *string    `json:"promo_code,omitempty"`
	Status     Status     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

func toData(inv *Invoice) InvoiceData {
	return InvoiceData{
		ID:         inv.ID,
		Number:     inv.Number,
		UserID:     inv.UserID,
		Plan:       inv.Plan,
		Amount:     inv.Amount,
		Currency:   inv.Currency,
		PaymentRef: inv.PaymentRef,
		PromoCode:  inv.PromoCode,
		Status:     inv.Status,
		PaidAt:     inv.PaidAt,
		CreatedAt:  inv.CreatedAt,
	}
}

type ListResponse struct {
	Invoices []InvoiceData `json:"invoices"`
}

func respondList(w http.ResponseWriter, invoices []Invoice) {
	data := make([]InvoiceData, 0, len(invoices))
	for _, inv := range invoices {
		data = append(data, toData(&inv))
	}
	web.RespondOK(w, nil, &ListResponse{Invoices: data})
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

	inv, err := h.svc.Create(r.Context(), userID, CreateInvoiceParams{Plan: req.Plan, PromoCode: req.PromoCode})
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Invoice created."
	data := toData(inv)
	web.RespondCreated(w, &msg, &data)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	invoices, err := h.svc.ListMine(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, invoices)
}

func (h *Handler) Pending(w http.ResponseWriter, r *http.Request) {
	invoices, err := h.svc.ListPending(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, invoices)
}

func (h *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	inv, err := h.svc.Cancel(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Invoice cancelled."
	data := toData(inv)
	web.RespondOK(w, &msg, &data)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	req, err := web.ParamsFromContext[ConfirmRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	inv, err := h.svc.Confirm(r.Context(), r.PathValue("id"), req.PaymentRef)
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Payment confirmed."
	data := toData(inv)
	web.RespondOK(w, &msg, &data)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, "Invoice not found.", nil)
	case errors.Is(err, ErrNotPending):
		web.RespondConflict(w, err, "Invoice is no longer pending.", nil)
	case errors.Is(err, subscription.ErrUnknownPlan):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"plan": "unknown plan"})
	case errors.Is(err, promo.ErrNotFound):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"promo_code": "unknown promo code"})
	case errors.Is(err, promo.ErrOwnCode):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"promo_code": "you cannot use your own promo code"})
	case errors.Is(err, promo.ErrUnusable):
		web.RespondUnprocessableEntity(w, err, message.InvalidInput, map[string]string{"promo_code": "promo code is no longer valid"})
	default:
		web.RespondInternalServerError(w, err)
	}
}
