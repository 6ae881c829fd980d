package mcard

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc     func(ctx context.Context, userID, slug string, f Fields) (Card, error)
	FindFunc       func(ctx context.Context, id string) (Card, error)
	UpdateFunc     func(ctx context.Context, id string, f Fields) (Card, error)
	DeleteFunc     func(ctx context.Context, id string) error
	ListByUserFunc func(ctx context.Context, userID string) ([]Card, error)
	ViewFunc       func(ctx context.Context, slug string) (Card, error)
	SearchFunc     func(ctx context.Context, term string, limit int) ([]Card, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, userID, slug string, f Fields) (Card, error) {
	if r.CreateFunc == nil {
		return Card{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, userID, slug, f)
}

func (r *StubRepo) Find(ctx context.Context, id string) (Card, error) {
	if r.FindFunc == nil {
		return Card{}, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, id)
}

func (r *StubRepo) Update(ctx context.Context, id string, f Fields) (Card, error) {
	if r.UpdateFunc == nil {
		return Card{}, errors.New("Update() not implemented by stub")
	}
	return r.UpdateFunc(ctx, id, f)
}

func (r *StubRepo) Delete(ctx context.Context, id string) error {
	if r.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return r.DeleteFunc(ctx, id)
}

func (r *StubRepo) ListByUser(ctx context.Context, userID string) ([]Card, error) {
	if r.ListByUserFunc == nil {
		return nil, errors.New("ListByUser() not implemented by stub")
	}
	return r.ListByUserFunc(ctx, userID)
}

func (r *StubRepo) View(ctx context.Context, slug string) (Card, error) {
	if r.ViewFunc == nil {
		return Card{}, errors.New("View() not implemented by stub")
	}
	return r.ViewFunc(ctx, slug)
}

func (r *StubRepo) Search(ctx context.Context, term string, limit int) ([]Card, error) {
	if r.SearchFunc == nil {
		return nil, errors.New("Search() not implemented by stub")
	}
	return r.SearchFunc(ctx, term, limit)
}

type StubService struct {
	CreateFunc func(ctx context.Context, userID string, f Fields) (*Card, error)
	UpdateFunc func(ctx context.Context, userID, id string, f Fields) (*Card, error)
	DeleteFunc func(ctx context.Context, userID, id string) error
	MineFunc   func(ctx context.Context, userID string) ([]Card, error)
	ViewFunc   func(ctx context.Context, slug string) (*Card, error)
	SearchFunc func(ctx context.Context, term string, limit int) ([]Card, error)
}

var _ CardService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, userID string, f Fields) (*Card, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return s.CreateFunc(ctx, userID, f)
}

func (s *StubService) Update(ctx context.Context, userID, id string, f Fields) (*Card, error) {
	if s.UpdateFunc == nil {
		return nil, errors.New("Update() not implemented by stub")
	}
	return s.UpdateFunc(ctx, userID, id, f)
}

func (s *StubService) Delete(ctx context.Context, userID, id string) error {
	if s.DeleteFunc == nil {
		return errors.New("Delete() not implemented by stub")
	}
	return s.DeleteFunc(ctx, userID, id)
}

func (s *StubService) Mine(ctx context.Context, userID string) ([]Card, error) {
	if s.MineFunc == nil {
		return nil, errors.New("Mine() not implemented by stub")
	}
	return s.MineFunc(ctx, userID)
}

func (s *StubService) View(ctx context.Context, slug string) (*Card, error) {
	if s.ViewFunc == nil {
		return nil, errors.New("View() not implemented by stub")
	}
	return s.ViewFunc(ctx, slug)
}

func (s *StubService) Search(ctx context.Context, term string, limit int) ([]Card, error) {
	if s.SearchFunc == nil {
		return nil, errors.New("Search() not implemented by stub")
	}
	return s.SearchFunc(ctx, term, limit)
}
