package mcard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

var ErrForbidden = errors.New("card belongs to another user")

const (
	defaultTheme  = "classic"
	slugAttempts  = 3
	minSearchTerm = 2
)

type Repository interface {
	Create(ctx context.Context, userID, slug string, f Fields) (Card, error)
	Find(ctx context.Context, id string) (Card, error)
	Update(ctx context.Context, id string, f Fields) (Card, error)
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]Card, error)
	View(ctx context.Context, slug string) (Card, error)
	Search(ctx context.Context, term string, limit int) ([]Card, error)
}

type Service struct {
	repo    Repository
	newSlug func(name string) string
}

var _ CardService = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo, newSlug: NewSlug}
}

func (s *Service) Create(ctx context.Context, userID string, f Fields) (*Card, error) {
	if f.Theme == "" {
		f.Theme = defaultTheme
	}

	var err error
	for range slugAttempts {
		var c Card
		c, err = s.repo.Create(ctx, userID, s.newSlug(f.FullName), f)
		if err == nil {
			slog.Info("card created", "id", c.ID, "slug", c.Slug, "user_id", userID)
			return &c, nil
		}
		if !errors.Is(err, ErrDuplicate) {
			break
		}
	}

	return nil, fmt.Errorf("create card: %w", err)
}

// owned loads card id and checks that userID owns it.
func (s *Service) owned(ctx context.Context, userID, id string) (Card, error) {
	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return Card{}, err
	}
	if c.UserID != userID {
		return Card{}, ErrForbidden
	}
	return c, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, f Fields) (*Card, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}

	if f.Theme == "" {
		f.Theme = defaultTheme
	}

	c, err := s.repo.Update(ctx, id, f)
	if err != nil {
		return nil, fmt.Errorf("update card: %w", err)
	}
	return &c, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}

	slog.Info("card deleted", "id", id, "user_id", userID)
	return nil
}

func (s *Service) Mine(ctx context.Context, userID string) ([]Card, error) {
	cards, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cards of %s: %w", userID, err)
	}
	return cards, nil
}

func (s *Service) View(ctx context.Context, slug string) (*Card, error) {
	c, err := s.repo.View(ctx, strings.ToLower(slug))
	if err != nil {
		return nil, fmt.Errorf("view card: %w", err)
	}
	return &c, nil
}

func (s *Service) Search(ctx context.Context, term string, limit int) ([]Card, error) {
	term = strings.TrimSpace(term)
	if len([]rune(term)) < minSearchTerm {
		return []Card{}, nil
	}

	cards, err := s.repo.Search(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("search cards: %w", err)
	}
	return cards, nil
}
