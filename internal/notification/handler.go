package notification

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
	defaultLimit = 50
	maxLimit     = 200
)

type NotificationService interface {
	List(ctx context.Context, userID string, limit int) (*Inbox, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, userID, id string) (*Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, userID, id string) error
}

type Handler struct {
	svc NotificationService
}

func NewHandler(svc NotificationService) *Handler {
	return &Handler{svc: svc}
}

type NotificationData struct {
	ID        string     `json:"id"`
	Type      Type       `json:"type"`
	Tone      Tone       `json:"tone"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Link      string     `json:"link,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toData(n *Notification) NotificationData {
	return NotificationData{
		ID:        n.ID,
		Type:      n.Type,
		Tone:      n.Tone(),
		Title:     n.Title,
		Body:      n.Body,
		Link:      n.Link,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

type ListResponse struct {
	Notifications []NotificationData `json:"notifications"`
	Unread        int                `json:"unread"`
}

type UnreadResponse struct {
	Unread int `json:"unread"`
}

type MarkAllResponse struct {
	Updated int64 `json:"updated"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	inbox, err := h.svc.List(r.Context(), userID, web.QueryInt(r, "limit", defaultLimit, maxLimit))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	data := make([]NotificationData, 0, len(inbox.Notifications))
	for _, n := range inbox.Notifications {
		data = append(data, toData(&n))
	}

	web.RespondOK(w, nil, &ListResponse{Notifications: data, Unread: inbox.Unread})
}

func (h *Handler) Unread(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	count, err := h.svc.UnreadCount(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &UnreadResponse{Unread: count})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	n, err := h.svc.MarkRead(r.Context(), userID, r.PathValue("id"))
	if err != nil {
		respondErr(w, err)
		return
	}

	data := toData(n)
	web.RespondOK(w, nil, &data)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	count, err := h.svc.MarkAllRead(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &MarkAllResponse{Updated: count})
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

	msg := "Notification deleted."
	web.RespondOK[struct{}](w, &msg, nil)
}

func respondErr(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		web.RespondNotFound(w, err, message.NotFound, nil)
		return
	}
	web.RespondInternalServerError(w, err)
}
