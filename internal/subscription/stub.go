package subscription

import (
	"context"
	"errors"
	"time"
)

type StubRepo struct {
	FindFunc                  func(ctx context.Context, userID string) (*Subscription, error)
	FindForUpdateFunc         func(ctx context.Context, userID string) (*Subscription, error)
	SaveFunc                  func(ctx context.Context, sub Subscription) (Subscription, error)
	ListExpiredUnnotifiedFunc func(ctx context.Context, now time.Time) ([]Subscription, error)
	MarkNotifiedFunc          func(ctx context.Context, userID string, at time.Time) error
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) Find(ctx context.Context, userID string) (*Subscription, error) {
	if r.FindFunc == nil {
		return nil, errors.New("Find() not implemented by stub")
	}
	return r.FindFunc(ctx, userID)
}

func (r *StubRepo) FindForUpdate(ctx context.Context, userID string) (*Subscription, error) {
	if r.FindForUpdateFunc == nil {
		return nil, errors.New("FindForUpdate() not implemented by stub")
	}
	return r.FindForUpdateFunc(ctx, userID)
}

func (r *StubRepo) Save(ctx context.Context, sub Subscription) (Subscription, error) {
	if r.SaveFunc == nil {
		return Subscription{}, errors.New("Save() not implemented by stub")
	}
	return r.SaveFunc(ctx, sub)
}

func (r *StubRepo) ListExpiredUnnotified(ctx context.Context, now time.Time) ([]Subscription, error) {
	if r.ListExpiredUnnotifiedFunc == nil {
		return nil, errors.New("ListExpiredUnnotified() not implemented by stub")
	}
	return r.ListExpiredUnnotifiedFunc(ctx, now)
}

func (r *StubRepo) MarkNotified(ctx context.Context, userID string, at time.Time) error {
	if r.MarkNotifiedFunc == nil {
		return errors.New("MarkNotified() not implemented by stub")
	}
	return r.MarkNotifiedFunc(ctx, userID, at)
}

type StubService struct {
	GetFunc   func(ctx context.Context, userID string) (*View, error)
	PlansFunc func() []PlanInfo
}

var _ SubscriptionService = (*StubService)(nil)

func (s *StubService) Get(ctx context.Context, userID string) (*View, error) {
	if s.GetFunc == nil {
		return nil, errors.New("Get() not implemented by stub")
	}
	return s.GetFunc(ctx, userID)
}

func (s *StubService) Plans() []PlanInfo {
	if s.PlansFunc == nil {
		return nil
	}
	return s.PlansFunc()
}
