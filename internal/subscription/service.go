package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/notification"
)

var ErrUnknownPlan = errors.New("unknown plan")

type Repository interface {
	Find(ctx context.Context, userID string) (*Subscription, error)
	FindForUpdate(ctx context.Context, userID string) (*Subscription, error)
	Save(ctx context.Context, sub Subscription) (Subscription, error)
	ListExpiredUnnotified(ctx context.Context, now time.Time) ([]Subscription, error)
	MarkNotified(ctx context.Context, userID string, at time.Time) error
}

type Notifier interface {
	Notify(ctx context.Context, params notification.CreateParams) (*notification.Notification, error)
}

type Service struct {
	repo     Repository
	cfg      *config.Subscription
	notifier Notifier
	now      func() time.Time
}

var _ SubscriptionService = (*Service)(nil)

func NewService(repo Repository, cfg *config.Subscription, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		cfg:      cfg,
		notifier: notifier,
		now:      time.Now,
	}
}

type View struct {
	Subscription  *Subscription
	Status        Status
	DaysRemaining int
}

func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	sub, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &View{Status: StatusNone}, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}

	now := s.now()
	return &View{
		Subscription:  sub,
		Status:        ComputeStatus(sub, now, s.cfg.ExpiringWindow.Duration),
		DaysRemaining: DaysRemaining(sub.ExpiresAt, now),
	}, nil
}

// Extend adds one period of plan to the user's subscription, starting at the current expiry
// when it is still in the future. Call it inside a transaction.
func (s *Service) Extend(ctx context.Context, userID, plan string) (*Subscription, error) {
	p, ok := s.cfg.Plans[plan]
	if !ok {
		return nil, fmt.Errorf("extend with %q: %w", plan, ErrUnknownPlan)
	}

	current, err := s.repo.FindForUpdate(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("extend subscription: %w", err)
	}

	now := s.now().UTC()
	from := extendFrom(current, now)

	next := Subscription{
		UserID:    userID,
		Plan:      plan,
		StartedAt: now,
		ExpiresAt: from.Add(p.Duration.Duration),
	}
	if current != nil && current.ExpiresAt.After(now) {
		next.StartedAt = current.StartedAt
	}

	saved, err := s.repo.Save(ctx, next)
	if err != nil {
		return nil, fmt.Errorf("extend subscription: %w", err)
	}

	slog.Info("subscription extended", "user_id", userID, "plan", plan, "expires_at", saved.ExpiresAt)
	return &saved, nil
}

// Sweep notifies the owner of every subscription that expired since the last sweep. Each
// expiry is notified once. A failed notification is logged and retried on the next sweep.
func (s *Service) Sweep(ctx context.Context) (int, error) {
	now := s.now().UTC()

	expired, err := s.repo.ListExpiredUnnotified(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("sweep subscriptions: %w", err)
	}

	notified := 0
	for _, sub := range expired {
		_, err := s.notifier.Notify(ctx, notification.CreateParams{
			UserID: sub.UserID,
			Type:   notification.TypeSubscriptionExpired,
			Title:  "Your subscription has expired",
			Body:   fmt.Sprintf("Your %s plan expired on %s. Renew to keep your cards online.", sub.Plan, sub.ExpiresAt.Format(time.DateOnly)),
			Link:   "/subscription",
		})
		if err != nil {
			slog.Error("expiry notification failed", "user_id", sub.UserID, "reason", err)
			continue
		}

		if err := s.repo.MarkNotified(ctx, sub.UserID, now); err != nil {
			slog.Error("failed to mark expiry notified", "user_id", sub.UserID, "reason", err)
			continue
		}
		notified++
	}

	slog.Info("subscription sweep complete", "expired", len(expired), "notified", notified)
	return notified, nil
}

type PlanInfo struct {
	Name     string
	Price    int64
	Currency string
	Duration time.Duration
}

// Plans lists the configured plans, cheapest first.
func (s *Service) Plans() []PlanInfo {
	plans := make([]PlanInfo, 0, len(s.cfg.Plans))
	for name, p := range s.cfg.Plans {
		plans = append(plans, PlanInfo{
			Name:     name,
			Price:    p.Price,
			Currency: s.cfg.Currency,
			Duration: p.Duration.Duration,
		})
	}

	sort.Slice(plans, func(i, j int) bool {
		if plans[i].Price != plans[j].Price {
			return plans[i].Price < plans[j].Price
		}
		return plans[i].Name < plans[j].Name
	})
	return plans
}

// Price returns the price of plan.
func (s *Service) Price(plan string) (int64, string, error) {
	p, ok := s.cfg.Plans[plan]
	if !ok {
		return 0, "", fmt.Errorf("price of %q: %w", plan, ErrUnknownPlan)
	}
	return p.Price, s.cfg.Currency, nil
}
