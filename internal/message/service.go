package message

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/ferdiebergado/finderid/internal/notification"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
)

var (
	ErrSelf              = errors.New("cannot message yourself")
	ErrRecipientNotFound = errors.New("recipient not found")
)

const previewLength = 80

type Repository interface {
	Create(ctx context.Context, senderID, recipientID, body string) (Message, error)
	ListInvolving(ctx context.Context, userID string) ([]Message, error)
	Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error)
	MarkThreadRead(ctx context.Context, recipientID, senderID string) (int64, error)
}

type Users interface {
	Exists(ctx context.Context, userID string) (bool, error)
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
}

type Notifier interface {
	Notify(ctx context.Context, params notification.CreateParams) (*notification.Notification, error)
}

type Service struct {
	repo     Repository
	users    Users
	pub      realtime.Publisher
	notifier Notifier
	now      func() time.Time
}

var _ MessageService = (*Service)(nil)

func NewService(repo Repository, users Users, pub realtime.Publisher, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		users:    users,
		pub:      pub,
		notifier: notifier,
		now:      time.Now,
	}
}

// publish sends the same event to both participants.
func (s *Service) publish(typ realtime.EventType, a, b string, record any) {
	evt := realtime.ChangeEvent{Table: Table, Type: typ, Record: record, Timestamp: s.now().UTC()}
	s.pub.Publish(a, evt)
	s.pub.Publish(b, evt)
}

func (s *Service) Send(ctx context.Context, senderID, recipientID, body string) (*Message, error) {
	if senderID == recipientID {
		return nil, ErrSelf
	}

	ok, err := s.users.Exists(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}
	if !ok {
		return nil, ErrRecipientNotFound
	}

	m, err := s.repo.Create(ctx, senderID, recipientID, body)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	s.publish(realtime.EventInsert, senderID, recipientID, &m)

	title := "New message"
	if names, err := s.users.DisplayNames(ctx, []string{senderID}); err == nil && names[senderID] != "" {
		title = "New message from " + names[senderID]
	}

	_, err = s.notifier.Notify(ctx, notification.CreateParams{
		UserID: recipientID,
		Type:   notification.TypeMessage,
		Title:  title,
		Body:   preview(body),
		Link:   "/messages/" + senderID,
	})
	if err != nil {
		slog.Error("message notification failed", "message_id", m.ID, "reason", err)
	}

	return &m, nil
}

func preview(body string) string {
	if utf8.RuneCountInString(body) <= previewLength {
		return body
	}
	return string([]rune(body)[:previewLength-1]) + "…"
}

func (s *Service) Conversations(ctx context.Context, userID string) ([]Conversation, error) {
	msgs, err := s.repo.ListInvolving(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	if len(msgs) == 0 {
		return []Conversation{}, nil
	}

	names, err := s.users.DisplayNames(ctx, Counterparts(userID, msgs))
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}

	return Aggregate(userID, msgs, names), nil
}

func (s *Service) Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error) {
	msgs, err := s.repo.Thread(ctx, userID, otherID, limit)
	if err != nil {
		return nil, fmt.Errorf("list thread: %w", err)
	}
	return msgs, nil
}

// MarkRead marks every message otherID sent to userID as read.
func (s *Service) MarkRead(ctx context.Context, userID, otherID string) (int64, error) {
	n, err := s.repo.MarkThreadRead(ctx, userID, otherID)
	if err != nil {
		return 0, fmt.Errorf("mark thread read: %w", err)
	}

	if n > 0 {
		s.publish(realtime.EventUpdate, userID, otherID, map[string]any{
			"recipient_id": userID,
			"sender_id":    otherID,
			"read":         n,
		})
	}
	return n, nil
}
