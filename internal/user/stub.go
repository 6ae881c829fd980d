package user

import (
	"context"
	"errors"
)

type StubService struct {
	ListFunc func(ctx context.Context) ([]User, error)
	FindFunc func(ctx context.Context, userID string) (*User, error)
}

var _ UserService = (*StubService)(nil)

func (s *StubService) List(ctx context.Context) ([]User, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return s.ListFunc(ctx)
}

func (s *StubService) Find(ctx context.Context, userID string) (*User, error) {
	if s.FindFunc == nil {
		return nil, errors.New("Find() not implemented by stub")
	}
	return s.FindFunc(ctx, userID)
}

type StubRepo struct {
	CreateFunc          func(ctx context.Context, params CreateParams) (User, error)
	ListFunc            func(ctx context.Context) ([]User, error)
	FindByEmailFunc     func(ctx context.Context, email string) (*User, error)
	FindFunc            func(ctx context.Context, userID string) (*User, error)
	DisplayNamesFunc    func(ctx context.Context, userIDs []string) (map[string]string, error)
	VerifiedEmailsFunc  func(ctx context.Context) ([]string, error)
	CardOwnerEmailsFunc func(ctx context.Context) ([]string, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (User, error) {
	if r.CreateFunc == nil {
		return User{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) List(ctx context.Context) ([]User, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if r.FindByEmailFunc == nil {
		return nil, errors.New("FindByEmail() not implemented by stub")
	}
	return r.FindByEmailFunc(ctx, email)
}

func (r *StubRepo) Find(ctx context.Context, userID string) (*User, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, userID)
}

func (r *StubRepo) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	if r.DisplayNamesFunc == nil {
		return nil, errors.New("DisplayNames() not implemented by stub")
	}
	return r.DisplayNamesFunc(ctx, userIDs)
}

func (r *StubRepo) VerifiedEmails(ctx context.Context) ([]string, error) {
	if r.VerifiedEmailsFunc == nil {
		return nil, errors.New("VerifiedEmails() not implemented by stub")
	}
	return r.VerifiedEmailsFunc(ctx)
}

func (r *StubRepo) CardOwnerEmails(ctx context.Context) ([]string, error) {
	if r.CardOwnerEmailsFunc == nil {
		return nil, errors.New("CardOwnerEmails() not implemented by stub")
	}
	return r.CardOwnerEmailsFunc(ctx)
}
