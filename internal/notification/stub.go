package notification

import (
	"context"
	"errors"
	"sync"
)

type StubRepo struct {
	CreateFunc      func(ctx context.Context, params CreateParams) (Notification, error)
	ListByUserFunc  func(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnreadFunc func(ctx context.Context, userID string) (int, error)
	MarkReadFunc    func(ctx context.Context, id, userID string) (Notification, error)
	MarkAllReadFunc func(ctx context.Context, userID string) (int64, error)
	DeleteFunc      func(ctx context.Context, id, userID string) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Notification, error) {
	if r.CreateFunc == nil {
		return Notification{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	if r.ListByUserFunc == nil {
		return nil, errors.New("ListByUser() not implemented by stub")
	}
	return r.ListByUserFunc(ctx, userID, limit)
}

func (r *StubRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	if r.CountUnreadFunc == nil {
		return 0, errors.New("CountUnread() not implemented by stub")
	}
	return r.CountUnreadFunc(ctx, userID)
}

func (r *StubRepo) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	if r.MarkReadFunc == nil {
		return Notification{}, errors.New("MarkRead() not implemented by stub")
	}
	return r.MarkReadFunc(ctx, id, userID)
}

func (r *StubRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if r.MarkAllReadFunc == nil {
		return 0, errors.New("MarkAllRead() not implemented by stub")
	}
	return r.MarkAllReadFunc(ctx, userID)
}

func (r *StubRepo) Delete(ctx context.Context, id, userID string) error {
	if r.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return r.DeleteFunc(ctx, id, userID)
}

type StubService struct {
	ListFunc        func(ctx context.Context, userID string, limit int) (*Inbox, error)
	UnreadCountFunc func(ctx context.Context, userID string) (int, error)
	MarkReadFunc    func(ctx context.Context, userID, id string) (*Notification, error)
	MarkAllReadFunc func(ctx context.Context, userID string) (int64, error)
	DeleteFunc      func(ctx context.Context, userID, id string) error
}

var _ NotificationService = (*StubService)(nil)

func (s *StubService) List(ctx context.Context, userID string, limit int) (*Inbox, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return s.ListFunc(ctx, userID, limit)
}

func (s *StubService) UnreadCount(ctx context.Context, userID string) (int, error) {
	if s.UnreadCountFunc == nil {
		return 0, errors.New("UnreadCount() not implemented by stub")
	}
	return s.UnreadCountFunc(ctx, userID)
}

func (s *StubService) MarkRead(ctx context.Context, userID, id string) (*Notification, error) {
	if s.MarkReadFunc == nil {
		return nil, errors.New("MarkRead() not implemented by stub")
	}
	return s.MarkReadFunc(ctx, userID, id)
}

func (s *StubService) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	if s.MarkAllReadFunc == nil {
		return 0, errors.New("MarkAllRead() not implemented by stub")
	}
	return s.MarkAllReadFunc(ctx, userID)
}

func (s *StubService) Delete(ctx context.Context, userID, id string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return s.DeleteFunc(ctx, userID, id)
}

// RecordingNotifier records every notification it is asked to send. Err, when set, is
// returned instead.
type RecordingNotifier struct {
	Err error

	mu   sync.Mutex
	sent []CreateParams
}

func (n *RecordingNotifier) Notify(_ context.Context, params CreateParams) (*Notification, error) {
	if n.Err != nil {
		return nil, n.Err
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, params)
	return &Notification{UserID: params.UserID, Type: params.Type, Title: params.Title}, nil
}

func (n *RecordingNotifier) NotifyMany(ctx context.Context, batch []CreateParams) error {
	var errs []error
	for _, params := range batch {
		if _, err := n.Notify(ctx, params); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Sent returns a copy of the recorded notifications.
func (n *RecordingNotifier) Sent() []CreateParams {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]CreateParams(nil), n.sent...)
}
