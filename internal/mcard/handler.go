package mcard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type CardService interface {
	Create(ctx context.Context, userID string, f Fields) (*Card, error)
	Update(ctx context.Context, userID, id string, f Fields) (*Card, error)
	Delete(ctx context.Context, userID, id string) error
	Mine(ctx context.Context, userID string) ([]Card, error)
	View(ctx context.Context, slug string) (*Card, error)
	Search(ctx context.Context, term string, limit int) ([]Card, error)
}

type Handler struct {
	svc CardService
}

func NewHandler(svc CardService) *Handler {
	return &Handler{svc: svc}
}

type CardRequest struct {
	FullName string `json:"full_name,omitempty" validate:"required,max=120"`
	Title    string `json:"title,omitempty" validate:"max=120"`
	Company  string `json:"company,omitempty" validate:"max=120"`
	Phone    string `json:"phone,omitempty" validate:"omitempty,phone,max=40"`
	Email    string `json:"email,omitempty" validate:"omitempty,email"`
	Website  string `json:"website,omitempty" validate:"omitempty,http_url"`
	Bio      string `json:"bio,omitempty" validate:"max=500"`
	Theme    string `json:"theme,omitempty" validate:"omitempty,oneof=classic modern dark minimal"`
	IsPublic *bool  `json:"is_public,omitempty"`
}

func (r *CardRequest) fields() Fields {
	public := true
	if r.IsPublic != nil {
		public = *r.IsPublic
	}

	return Fields{
		FullName: r.FullName,
		Title:    r.Title,
		Company:  r.Company,
		Phone:    r.Phone,
		Email:    r.Email,
		Website:  r.Website,
		Bio:      r.Bio,
		Theme:    r.Theme,
		IsPublic: public,
	}
}

type CardData struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	FullName  string    `json:"full_name"`
	Title     string    `json:"title,omitempty"`
	Company   string    `json:"company,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Website   string    `json:"website,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	Theme     string    `json:"theme"`
	IsPublic  bool      `json:"is_public"`
	Views     int64     `json:"views"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toData(c *Card) CardData {
	return CardData{
		ID:        c.ID,
		Slug:      c.Slug,
		FullName:  c.FullName,
		Title:     c.Title,
		Company:   c.Company,
		Phone:     c.Phone,
		Email:     c.Email,
		Website:   c.Website,
		Bio:       c.Bio,
		Theme:     c.Theme,
		IsPublic:  c.IsPublic,
		Views:     c.Views,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type ListResponse struct {
	Cards []CardData `json:"cards"`
}

func respondList(w http.ResponseWriter, cards []Card) {
	data := make([]CardData, 0, len(cards))
	for _, c := range cards {
		data = append(data, toData(&c))
	}
	web.RespondOK(w, nil, &ListResponse{Cards: data})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CardRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	c, err := h.svc.Create(r.Context(), userID, req.fields())
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Card created."
	data := toData(c)
	web.RespondCreated(w, &msg, &data)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[CardRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, message.InvalidInput, nil)
		return
	}

	c, err := h.svc.Update(r.Context(), userID, r.PathValue("id"), req.fields())
	if err != nil {
		respondErr(w, err)
		return
	}

	msg := "Card updated."
	data := toData(c)
	web.RespondOK(w, &msg, &data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	if err := h.svc.Delete(r.Context(), userID, r.PathValue("id")); err != nil {
		respondErr(w, err)
		return
	}

	msg := "Card deleted."
	web.RespondOK[struct{}](w, &msg, nil)
}

func (h *Handler) Mine(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	cards, err := h.svc.Mine(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, cards)
}

func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.View(r.Context(), r.PathValue("slug"))
	if err != nil {
		respondErr(w, err)
		return
	}

	data := toData(c)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	cards, err := h.svc.Search(r.Context(), r.URL.Query().Get("q"), web.QueryInt(r, "limit", defaultSearchLimit, maxSearchLimit))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	respondList(w, cards)
}

func respondErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		web.RespondNotFound(w, err, "Card not found.", nil)
	case errors.Is(err, ErrForbidden):
		web.RespondForbidden(w, err, message.Forbidden, nil)
	default:
		web.RespondInternalServerError(w, err)
	}
}
