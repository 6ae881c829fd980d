package message

import (
	"context"
	"errors"
	"net/http"
	"time"

	appmsg "github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/user"
)

const (
	defaultThreadLimit = 100
	maxThreadLimit     = 500
)

type MessageService interface {
	Send(ctx context.Context, senderID, recipientID, body string) (*Message, error)
	Conversations(ctx context.Context, userID string) ([]Conversation, error)
	Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error)
	MarkRead(ctx context.Context, userID, otherID string) (int64, error)
}

type Handler struct {
	svc MessageService
}

func NewHandler(svc MessageService) *Handler {
	return &Handler{svc: svc}
}

type SendRequest struct {
	RecipientID string `json:"recipient_id,omitempty" validate:"required,uuid"`
	Body        string `json:"body,omitempty" validate:"required,max=2000"`
}

type ConversationData struct {
	CounterpartID   string    `json:"counterpart_id"`
	CounterpartName string    `json:"counterpart_name"`
	LastMessage     Message   `json:"last_message"`
	LastAt          time.Time `json:"last_at"`
	Unread          int       `json:"unread"`
}

type ConversationsResponse struct {
	Conversations []ConversationData `json:"conversations"`
	Unread        int                `json:"unread"`
}

type ThreadResponse struct {
	Messages []Message `json:"messages"`
}

type MarkReadResponse struct {
	Updated int64 `json:"updated"`
}

func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, appmsg.InvalidUser, nil)
		return
	}

	req, err := web.ParamsFromContext[SendRequest](r.Context())
	if err != nil {
		web.RespondBadRequest(w, err, appmsg.InvalidInput, nil)
		return
	}

	m, err := h.svc.Send(r.Context(), userID, req.RecipientID, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelf):
			web.RespondUnprocessableEntity(w, err, appmsg.InvalidInput, map[string]string{"recipient_id": "you cannot message yourself"})
		case errors.Is(err, ErrRecipientNotFound):
			web.RespondNotFound(w, err, "Recipient not found.", nil)
		default:
			web.RespondInternalServerError(w, err)
		}
		return
	}

	msg := "Message sent."
	web.RespondCreated(w, &msg, m)
}

func (h *Handler) Conversations(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, appmsg.InvalidUser, nil)
		return
	}

	convs, err := h.svc.Conversations(r.Context(), userID)
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	res := &ConversationsResponse{Conversations: make([]ConversationData, 0, len(convs))}
	for _, c := range convs {
		res.Conversations = append(res.Conversations, ConversationData{
			CounterpartID:   c.CounterpartID,
			CounterpartName: c.CounterpartName,
			LastMessage:     c.LastMessage,
			LastAt:          c.LastMessage.CreatedAt,
			Unread:          c.Unread,
		})
		res.Unread += c.Unread
	}

	web.RespondOK(w, nil, res)
}

func (h *Handler) Thread(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, appmsg.InvalidUser, nil)
		return
	}

	msgs, err := h.svc.Thread(r.Context(), userID, r.PathValue("userID"), web.QueryInt(r, "limit", defaultThreadLimit, maxThreadLimit))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	if msgs == nil {
		msgs = []Message{}
	}
	web.RespondOK(w, nil, &ThreadResponse{Messages: msgs})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := user.FromContext(r.Context())
	if err != nil {
		web.RespondUnauthorized(w, err, appmsg.InvalidUser, nil)
		return
	}

	n, err := h.svc.MarkRead(r.Context(), userID, r.PathValue("userID"))
	if err != nil {
		web.RespondInternalServerError(w, err)
		return
	}

	web.RespondOK(w, nil, &MarkReadResponse{Updated: n})
}
