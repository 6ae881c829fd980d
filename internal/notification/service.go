package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/realtime"
	"golang.org/x/sync/errgroup"
)

const fanOutLimit = 8

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Notification, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error)
	CountUnread(ctx context.Context, userID string) (int, error)
	MarkRead(ctx context.Context, id, userID string) (Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
	Delete(ctx context.Context, id, userID string) error
}

// Service stores notifications and pushes a change event to the owner after every mutation.
type Service struct {
	repo Repository
	pub  realtime.Publisher
	now  func() time.Time
}

var _ NotificationService = (*Service)(nil)

func NewService(repo Repository, pub realtime.Publisher) *Service {
	return &Service{repo: repo, pub: pub, now: time.Now}
}

func (s *Service) publish(userID string, typ realtime.EventType, record any) {
	s.pub.Publish(userID, realtime.ChangeEvent{
		Table:     Table,
		Type:      typ,
		Record:    record,
		Timestamp: s.now().UTC(),
	})
}

func (s *Service) Notify(ctx context.Context, params CreateParams) (*Notification, error) {
	n, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create %s notification for %s: %w", params.Type, params.UserID, err)
	}

	s.publish(n.UserID, realtime.EventInsert, &n)
	return &n, nil
}

// NotifyMany stores every notification concurrently. A failed notification does not stop the
// others; all failures are returned joined.
func (s *Service) NotifyMany(ctx context.Context, batch []CreateParams) error {
	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(fanOutLimit)

	for _, params := range batch {
		g.Go(func() error {
			if _, err := s.Notify(ctx, params); err != nil {
				slog.Error("notification failed", "user_id", params.UserID, "type", params.Type, "reason", err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return errors.Join(errs...)
}

type Inbox struct {
	Notifications []Notification
	Unread        int
}

func (s *Service) List(ctx context.Context, userID string, limit int) (*Inbox, error) {
	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count unread: %w", err)
	}

	return &Inbox{Notifications: list, Unread: unread}, nil
}

func (s *Service) UnreadCount(ctx context.Context, userID string) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}
	return count, nil
}

func (s *Service) MarkRead(ctx context.Context, userID, id string) (*Notification, error) {
	n, err := s.repo.MarkRead(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("mark notification %s read: %w", id, err)
	}

	s.publish(userID, realtime.EventUpdate, &n)
	return &n, nil
}

func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	if count > 0 {
		s.publish(userID, realtime.EventUpdate, nil)
	}
	return count, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return fmt.Errorf("delete notification %s: %w", id, err)
	}

	s.publish(userID, realtime.EventDelete, map[string]string{"id": id})
	return nil
}
