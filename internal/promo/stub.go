package promo

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc            func(ctx context.Context, params CreateParams) (Promo, error)
	ListByUserFunc        func(ctx context.Context, userID string) ([]Promo, error)
	ListFunc              func(ctx context.Context) ([]Promo, error)
	CountActiveByUserFunc func(ctx context.Context, userID string) (int, error)
	FindByCodeFunc        func(ctx context.Context, code string) (Promo, error)
	IncrementUsesFunc     func(ctx context.Context, code string) (Promo, error)
	DeactivateFunc        func(ctx context.Context, id string) (Promo, error)
	MarkPaidFunc          func(ctx context.Context, id string) (Promo, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Promo, error) {
	if r.CreateFunc == nil {
		return Promo{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) ListByUser(ctx context.Context, userID string) ([]Promo, error) {
	if r.ListByUserFunc == nil {
		return nil, errors.New("ListByUser() not implemented by stub")
	}
	return r.ListByUserFunc(ctx, userID)
}

func (r *StubRepo) List(ctx context.Context) ([]Promo, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepo) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	if r.CountActiveByUserFunc == nil {
		return 0, errors.New("CountActiveByUser() not implemented by stub")
	}
	return r.CountActiveByUserFunc(ctx, userID)
}

func (r *StubRepo) FindByCode(ctx context.Context, code string) (Promo, error) {
	if r.FindByCodeFunc == nil {
		return Promo{}, errors.New("FindByCode() not implemented by stub")
	}
	return r.FindByCodeFunc(ctx, code)
}

func (r *StubRepo) IncrementUses(ctx context.Context, code string) (Promo, error) {
	if r.IncrementUsesFunc == nil {
		return Promo{}, errors.New("IncrementUses() not implemented by stub")
	}
	return r.IncrementUsesFunc(ctx, code)
}

func (r *StubRepo) Deactivate(ctx context.Context, id string) (Promo, error) {
	if r.DeactivateFunc == nil {
		return Promo{}, errors.New("Deactivate() not implemented by stub")
	}
	return r.DeactivateFunc(ctx, id)
}

func (r *StubRepo) MarkPaid(ctx context.Context, id string) (Promo, error) {
	if r.MarkPaidFunc == nil {
		return Promo{}, errors.New("MarkPaid() not implemented by stub")
	}
	return r.MarkPaidFunc(ctx, id)
}

type StubService struct {
	CreateFunc     func(ctx context.Context, userID, code string) (*Promo, error)
	ListMineFunc   func(ctx context.Context, userID string) ([]Promo, error)
	ListFunc       func(ctx context.Context) ([]Promo, error)
	ValidateFunc   func(ctx context.Context, userID, code string) (*Promo, error)
	DeactivateFunc func(ctx context.Context, id string) (*Promo, error)
	MarkPaidFunc   func(ctx context.Context, id string) (*Promo, error)
}

var _ PromoService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, userID, code string) (*Promo, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return s.CreateFunc(ctx, userID, code)
}

func (s *StubService) ListMine(ctx context.Context, userID string) ([]Promo, error) {
	if s.ListMineFunc == nil {
		return nil, errors.New("ListMine() not implemented by stub")
	}
	return s.ListMineFunc(ctx, userID)
}

func (s *StubService) List(ctx context.Context) ([]Promo, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return s.ListFunc(ctx)
}

func (s *StubService) Validate(ctx context.Context, userID, code string) (*Promo, error) {
	if s.ValidateFunc == nil {
		return nil, errors.New("Validate() not implemented by stub")
	}
	return s.ValidateFunc(ctx, userID, code)
}

func (s *StubService) Deactivate(ctx context.Context, id string) (*Promo, error) {
	if s.DeactivateFunc == nil {
		return nil, errors.New("Deactivate() not implemented by stub")
	}
	return s.DeactivateFunc(ctx, id)
}

func (s *StubService) MarkPaid(ctx context.Context, id string) (*Promo, error) {
	if s.MarkPaidFunc == nil {
		return nil, errors.New("MarkPaid() not implemented by stub")
	}
	return s.MarkPaidFunc(ctx, id)
}
