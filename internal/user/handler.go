package user

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

type UserService interface {
	List(ctx context.Context) ([]User, error)
	Find(ctx context.Context, userID string) (*User, error)
}

type Handler struct {
	svc UserService
}

func NewHandler(svc UserService) *Handler {
	return &Handler{svc: svc}
}

type UserData struct {
	ID          string          `json:"id,omitempty"`
	Email       string          `json:"email,omitempty"`
	DisplayName string          `json:"display_name,omitempty"`
	Role        Role            `json:"role,omitempty"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	VerifiedAt  *time.Time      `json:"verified_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
	UpdatedAt   time.Time       `json:"updated_at,omitempty"`
}

type ListResponse struct {
	Users []UserData `json:"users"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.List(r.Context())
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]UserData, 0, len(users))
	for _, u := range users {
		data = append(data, toUserData(&u))
	}

	web.RespondOK(w, nil, &ListResponse{Users: data})
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	u, err := h.svc.Find(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			web.RespondNotFound(w, err, message.NotFound, nil)
			return
		}
		web.RespondInternalServerError(w, err)
		return
	}

	data := toUserData(u)
	web.RespondOK(w, nil, &data)
}

func toUserData(u *User) UserData {
	return UserData{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        u.Role,
		Metadata:    u.Metadata,
		VerifiedAt:  u.VerifiedAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
