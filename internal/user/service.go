package user

import (
	"context"
	"errors"
	"fmt"
)

// Repository is the interface for user management.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (User, error)
	List(ctx context.Context) ([]User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	Find(ctx context.Context, userID string) (*User, error)
	DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error)
	VerifiedEmails(ctx context.Context) ([]string, error)
	CardOwnerEmails(ctx context.Context) ([]string, error)
}

type Service struct {
	repo Repository
}

var _ UserService = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (User, error) {
	u, err := s.repo.Create(ctx, params)
	if err != nil {
		return User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *Service) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (s *Service) Find(ctx context.Context, userID string) (*User, error) {
	u, err := s.repo.Find(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Exists reports whether a user with the id exists.
func (s *Service) Exists(ctx context.Context, userID string) (bool, error) {
	if _, err := s.Find(ctx, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// IsAdmin reports whether the user has the admin role. Unknown users are not admins.
func (s *Service) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, err := s.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return u.IsAdmin(), nil
}

// DisplayNames maps each id to its display name. Unknown ids are absent from the map.
func (s *Service) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	names, err := s.repo.DisplayNames(ctx, userIDs)
	if err != nil {
		return nil, fmt.Errorf("display names: %w", err)
	}
	return names, nil
}

func (s *Service) VerifiedEmails(ctx context.Context) ([]string, error) {
	emails, err := s.repo.VerifiedEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("verified emails: %w", err)
	}
	return emails, nil
}

func (s *Service) CardOwnerEmails(ctx context.Context) ([]string, error) {
	emails, err := s.repo.CardOwnerEmails(ctx)
	if err != nil {
		return nil, fmt.Errorf("card owner emails: %w", err)
	}
	return emails, nil
}
