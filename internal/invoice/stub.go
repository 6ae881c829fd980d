package invoice

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc       func(ctx context.Context, params CreateParams) (Invoice, error)
	ListByUserFunc   func(ctx context.Context, userID string) ([]Invoice, error)
	ListByStatusFunc func(ctx context.Context, status Status) ([]Invoice, error)
	MarkPaidFunc     func(ctx context.Context, id, paymentRef string) (Invoice, error)
	CancelFunc       func(ctx context.Context, id, userID string) (Invoice, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Invoice, error) {
	if r.CreateFunc == nil {
		return Invoice{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) ListByUser(ctx context.Context, userID string) ([]Invoice, error) {
	if r.ListByUserFunc == nil {
		return nil, errors.New("ListByUser() not implemented by stub")
	}
	return r.ListByUserFunc(ctx, userID)
}

func (r *StubRepo) ListByStatus(ctx context.Context, status Status) ([]Invoice, error) {
	if r.ListByStatusFunc == nil {
		return nil, errors.New("ListByStatus() not implemented by stub")
	}
	return r.ListByStatusFunc(ctx, status)
}

func (r *StubRepo) MarkPaid(ctx context.Context, id, paymentRef string) (Invoice, error) {
	if r.MarkPaidFunc == nil {
		return Invoice{}, errors.New("MarkPaid() not implemented by stub")
	}
	return r.MarkPaidFunc(ctx, id, paymentRef)
}

func (r *StubRepo) Cancel(ctx context.Context, id, userID string) (Invoice, error) {
	if r.CancelFunc == nil {
		return Invoice{}, errors.New("Cancel() not implemented by stub")
	}
	return r.CancelFunc(ctx, id, userID)
}

type StubService struct {
	CreateFunc      func(ctx context.Context, userID string, params CreateInvoiceParams) (*Invoice, error)
	ListMineFunc    func(ctx context.Context, userID string) ([]Invoice, error)
	ListPendingFunc func(ctx context.Context) ([]Invoice, error)
	CancelFunc      func(ctx context.Context, userID, id string) (*Invoice, error)
	ConfirmFunc     func(ctx context.Context, id, paymentRef string) (*Invoice, error)
}

var _ InvoiceService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, userID string, params CreateInvoiceParams) (*Invoice, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return s.CreateFunc(ctx, userID, params)
}

func (s *StubService) ListMine(ctx context.Context, userID string) ([]Invoice, error) {
	if s.ListMineFunc == nil {
		return nil, errors.New("ListMine() not implemented by stub")
	}
	return s.ListMineFunc(ctx, userID)
}

func (s *StubService) ListPending(ctx context.Context) ([]Invoice, error) {
	if s.ListPendingFunc == nil {
		return nil, errors.New("ListPending() not implemented by stub")
	}
	return s.ListPendingFunc(ctx)
}

func (s *StubService) Cancel(ctx context.Context, userID, id string) (*Invoice, error) {
	if s.CancelFunc == nil {
		return nil, errors.New("Cancel() not implemented by stub")
	}
	return s.CancelFunc(ctx, userID, id)
}

func (s *StubService) Confirm(ctx context.Context, id, paymentRef string) (*Invoice, error) {
	if s.ConfirmFunc == nil {
		return nil, errors.New("Confirm() not implemented by stub")
	}
	return s.ConfirmFunc(ctx, id, paymentRef)
}
