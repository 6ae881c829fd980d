package campaign

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateFunc    func(ctx context.Context, params CreateParams) (Campaign, error)
	ListFunc      func(ctx context.Context) ([]Campaign, error)
	FindFunc      func(ctx context.Context, id string) (Campaign, error)
	InsertRunFunc func(ctx context.Context, run Run) error
	ListRunsFunc  func(ctx context.Context, limit int) ([]Run, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Create(ctx context.Context, params CreateParams) (Campaign, error) {
	if r.CreateFunc == nil {
		return Campaign{}, errors.New("Create() not implemented by stub")
	}
	return r.CreateFunc(ctx, params)
}

func (r *StubRepo) List(ctx context.Context) ([]Campaign, error) {
	if r.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return r.ListFunc(ctx)
}

func (r *StubRepo) Find(ctx context.Context, id string) (Campaign, error) {
	if r.FindFunc == nil {
		return Campaign{}, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, id)
}

func (r *StubRepo) InsertRun(ctx context.Context, run Run) error {
	if r.InsertRunFunc == nil {
		return errors.New("InsertRun() not implemented by stub")
	}
	return r.InsertRunFunc(ctx, run)
}

func (r *StubRepo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if r.ListRunsFunc == nil {
		return nil, errors.New("ListRuns() not implemented by stub")
	}
	return r.ListRunsFunc(ctx, limit)
}

type StubAudienceSource struct {
	VerifiedEmailsFunc  func(ctx context.Context) ([]string, error)
	CardOwnerEmailsFunc func(ctx context.Context) ([]string, error)
}

var _ AudienceSource = (*StubAudienceSource)(nil)

func (s *StubAudienceSource) VerifiedEmails(ctx context.Context) ([]string, error) {
	if s.VerifiedEmailsFunc == nil {
		return nil, errors.New("VerifiedEmails() not implemented by stub")
	}
	return s.VerifiedEmailsFunc(ctx)
}

func (s *StubAudienceSource) CardOwnerEmails(ctx context.Context) ([]string, error) {
	if s.CardOwnerEmailsFunc == nil {
		return nil, errors.New("CardOwnerEmails() not implemented by stub")
	}
	return s.CardOwnerEmailsFunc(ctx)
}

type StubService struct {
	CreateFunc   func(ctx context.Context, params CreateParams) (*Campaign, error)
	ListFunc     func(ctx context.Context) ([]Campaign, error)
	RunsFunc     func(ctx context.Context, limit int) ([]Run, error)
	SendFunc     func(ctx context.Context, id string) (*Run, error)
	SendBulkFunc func(ctx context.Context, params BulkParams) (*Run, error)
}

var _ CampaignService = (*StubService)(nil)

func (s *StubService) Create(ctx context.Context, params CreateParams) (*Campaign, error) {
	if s.CreateFunc == nil {
		return nil, errors.New("Create() not implemented by stub")
	}
	return s.CreateFunc(ctx, params)
}

func (s *StubService) List(ctx context.Context) ([]Campaign, error) {
	if s.ListFunc == nil {
		return nil, errors.New("List() not implemented by stub")
	}
	return s.ListFunc(ctx)
}

func (s *StubService) Runs(ctx context.Context, limit int) ([]Run, error) {
	if s.RunsFunc == nil {
		return nil, errors.New("Runs() not implemented by stub")
	}
	return s.RunsFunc(ctx, limit)
}

func (s *StubService) Send(ctx context.Context, id string) (*Run, error) {
	if s.SendFunc == nil {
		return nil, errors.New("Send() not implemented by stub")
	}
	return s.SendFunc(ctx, id)
}

func (s *StubService) SendBulk(ctx context.Context, params BulkParams) (*Run, error) {
	if s.SendBulkFunc == nil {
		return nil, errors.New("SendBulk() not implemented by stub")
	}
	return s.SendBulkFunc(ctx, params)
}
