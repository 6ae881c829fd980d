package promo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/notification"
)

var (
	ErrOwnCode      = errors.New("cannot use own promo code")
	ErrUnusable     = errors.New("promo code is not usable")
	ErrTooManyCodes = errors.New("too many active promo codes")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Promo, error)
	ListByUser(ctx context.Context, userID string) ([]Promo, error)
	List(ctx context.Context) ([]Promo, error)
	CountActiveByUser(ctx context.Context, userID string) (int, error)
	FindByCode(ctx context.Context, code string) (Promo, error)
	IncrementUses(ctx context.Context, code string) (Promo, error)
	Deactivate(ctx context.Context, id string) (Promo, error)
	MarkPaid(ctx context.Context, id string) (Promo, error)
}

type Notifier interface {
	Notify(ctx context.Context, params notification.CreateParams) (*notification.Notification, error)
}

type Service struct {
	repo     Repository
	cfg      *config.Promo
	notifier Notifier
	now      func() time.Time
}

var _ PromoService = (*Service)(nil)

func NewService(repo Repository, cfg *config.Promo, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		cfg:      cfg,
		notifier: notifier,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, userID, code string) (*Promo, error) {
	if s.cfg.MaxActive > 0 {
		count, err := s.repo.CountActiveByUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("create promo code: %w", err)
		}
		if count >= s.cfg.MaxActive {
			return nil, ErrTooManyCodes
		}
	}

	params := CreateParams{
		UserID: userID,
		Code:   NormalizeCode(code),
		Reward: s.cfg.Reward,
	}
	if s.cfg.ValidFor.Duration > 0 {
		expires := s.now().UTC().Add(s.cfg.ValidFor.Duration)
		params.ExpiresAt = &expires
	}

	p, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create promo code: %w", err)
	}

	slog.Info("promo code created", "user_id", userID, "code", p.Code)
	return &p, nil
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Promo, error) {
	promos, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list promo codes of %s: %w", userID, err)
	}
	return promos, nil
}

func (s *Service) List(ctx context.Context) ([]Promo, error) {
	promos, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list promo codes: %w", err)
	}
	return promos, nil
}

// Validate checks that userID may apply code to a purchase.
func (s *Service) Validate(ctx context.Context, userID, code string) (*Promo, error) {
	p, err := s.repo.FindByCode(ctx, NormalizeCode(code))
	if err != nil {
		return nil, fmt.Errorf("validate promo code: %w", err)
	}

	if p.UserID == userID {
		return nil, ErrOwnCode
	}

	if status := p.Status(s.now()); status != StatusActive {
		return nil, fmt.Errorf("promo code is %s: %w", status, ErrUnusable)
	}

	return &p, nil
}

// RecordUse counts one use of code by userID. Call it inside the transaction that settles the
// purchase.
func (s *Service) RecordUse(ctx context.Context, userID, code string) error {
	p, err := s.Validate(ctx, userID, code)
	if err != nil {
		return err
	}

	if _, err := s.repo.IncrementUses(ctx, p.Code); err != nil {
		return fmt.Errorf("record promo use: %w", err)
	}
	return nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*Promo, error) {
	p, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deactivate promo code: %w", err)
	}

	slog.Info("promo code deactivated", "id", id, "code", p.Code)
	return &p, nil
}

func (s *Service) MarkPaid(ctx context.Context, id string) (*Promo, error) {
	p, err := s.repo.MarkPaid(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark promo code paid: %w", err)
	}

	amount := p.Uses * p.Reward
	_, err = s.notifier.Notify(ctx, notification.CreateParams{
		UserID: p.UserID,
		Type:   notification.TypePromoPaid,
		Title:  "Promo payout sent",
		Body:   fmt.Sprintf("Your payout of %d.%02d for code %s (%d uses) has been sent.", amount/100, amount%100, p.Code, p.Uses),
		Link:   "/promos",
	})
	if err != nil {
		slog.Error("promo payout notification failed", "id", id, "reason", err)
	}

	return &p, nil
}
