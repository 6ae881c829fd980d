package document

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc         func(ctx context.Context, params CreateParams) (Document, error)
	ListByReporterFunc func(ctx context.Context, reporterID string) ([]Document, error)
	ListByStatusFunc   func(ctx context.Context, status Status) ([]Document, error)
	SearchApprovedFunc func(ctx context.Context, normalized, docType string, limit int) ([]Document, error)
	FindMatchesFunc    func(ctx context.Context, kind Kind, normalized, docType string) ([]Document, error)
	FindFunc           func(ctx context.Context, id string) (Document, error)
	ReviewFunc         func(ctx context.Context, id string, status Status) (Document, error)
	MarkReturnedFunc   func(ctx context.Context, id, reporterID string) (Document, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Document, error) {
	if r.CreateFunc == nil {
		return Document{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) ListByReporter(ctx context.Context, reporterID string) ([]Document, error) {
	if r.ListByReporterFunc == nil {
		return nil, errors.New("ListByReporter() not implemented by stub")
	}
	return r.ListByReporterFunc(ctx, reporterID)
}

func (r *StubRepo) ListByStatus(ctx context.Context, status Status) ([]Document, error) {
	if r.ListByStatusFunc == nil {
		return nil, errors.New("ListByStatus() not implemented by stub")
	}
	return r.ListByStatusFunc(ctx, status)
}

func (r *StubRepo) SearchApproved(ctx context.Context, normalized, docType string, limit int) ([]Document, error) {
	if r.SearchApprovedFunc == nil {
		return nil, errors.New("SearchApproved() not implemented by stub")
	}
	return r.SearchApprovedFunc(ctx, normalized, docType, limit)
}

func (r *StubRepo) FindMatches(ctx context.Context, kind Kind, normalized, docType string) ([]Document, error) {
	if r.FindMatchesFunc == nil {
		return nil, errors.New("FindMatches() not implemented by stub")
	}
	return r.FindMatchesFunc(ctx, kind, normalized, docType)
}

func (r *StubRepo) Find(ctx context.Context, id string) (Document, error) {
	if r.FindFunc == nil {
		return Document{}, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, id)
}

func (r *StubRepo) Review(ctx context.Context, id string, status Status) (Document, error) {
	if r.ReviewFunc == nil {
		return Document{}, errors.New("Review() not implemented by stub")
	}
	return r.ReviewFunc(ctx, id, status)
}

func (r *StubRepo) MarkReturned(ctx context.Context, id, reporterID string) (Document, error) {
	if r.MarkReturnedFunc == nil {
		return Document{}, errors.New("MarkReturned() not implemented by stub")
	}
	return r.MarkReturnedFunc(ctx, id, reporterID)
}

type StubService struct {
	ReportFunc       func(ctx context.Context, params CreateParams) (*Document, error)
	MineFunc         func(ctx context.Context, reporterID string) ([]Document, error)
	SearchFunc       func(ctx context.Context, number, docType string, limit int) ([]Document, error)
	PendingFunc      func(ctx context.Context) ([]Document, error)
	ApproveFunc      func(ctx context.Context, id string) (*Document, error)
	RejectFunc       func(ctx context.Context, id string) (*Document, error)
	MarkReturnedFunc func(ctx context.Context, reporterID, id string) (*Document, error)
}

var _ DocumentService = (*StubService)(nil)

func (s *StubService) Report(ctx context.Context, params CreateParams) (*Document, error) {
	if s.ReportFunc == nil {
		return nil, errors.New("Report() not implemented by stub")
	}
	return s.ReportFunc(ctx, params)
}

func (s *StubService) Mine(ctx context.Context, reporterID string) ([]Document, error) {
	if s.MineFunc == nil {
		return nil, errors.New("Mine() not implemented by stub")
	}
	return s.MineFunc(ctx, reporterID)
}

func (s *StubService) Search(ctx context.Context, number, docType string, limit int) ([]Document, error) {
	if s.SearchFunc == nil {
		return nil, errors.New("Search() not implemented by stub")
	}
	return s.SearchFunc(ctx, number, docType, limit)
}

func (s *StubService) Pending(ctx context.Context) ([]Document, error) {
	if s.PendingFunc == nil {
		return nil, errors.New("Pending() not implemented by stub")
	}
	return s.PendingFunc(ctx)
}

func (s *StubService) Approve(ctx context.Context, id string) (*Document, error) {
	if s.ApproveFunc == nil {
		return nil, errors.New("Approve() not implemented by stub")
	}
	return s.ApproveFunc(ctx, id)
}

func (s *StubService) Reject(ctx context.Context, id string) (*Document, error) {
	if s.RejectFunc == nil {
		return nil, errors.New("Reject() not implemented by stub")
	}
	return s.RejectFunc(ctx, id)
}

func (s *StubService) MarkReturned(ctx context.Context, reporterID, id string) (*Document, error) {
	if s.MarkReturnedFunc == nil {
		return nil, errors.New("MarkReturned() not implemented by stub")
	}
	return s.MarkReturnedFunc(ctx, reporterID, id)
}
