package loyalty

import (
	"context"
	"errors"
)

type StubRepo struct {
	CreateTaskFunc     func(ctx context.Context, params CreateTaskParams) (Task, error)
	EnsureTaskFunc     func(ctx context.Context, params CreateTaskParams) (Task, error)
	ListTasksFunc      func(ctx context.Context, userID string) ([]TaskState, error)
	FindTaskFunc       func(ctx context.Context, id string) (Task, error)
	DeactivateTaskFunc func(ctx context.Context, id string) (Task, error)
	CompleteFunc       func(ctx context.Context, userID string, task Task) (bool, error)
	BalanceFunc        func(ctx context.Context, userID string) (int, error)
}

var _ Repository = (*StubRepo)(nil)

func (r *StubRepo) CreateTask(ctx context.Context, params CreateTaskParams) (Task, error) {
	if r.CreateTaskFunc == nil {
		return Task{}, errors.New("CreateTask() not implemented by stub")
	}
	return r.CreateTaskFunc(ctx, params)
}

func (r *StubRepo) EnsureTask(ctx context.Context, params CreateTaskParams) (Task, error) {
	if r.EnsureTaskFunc == nil {
		return Task{}, errors.New("EnsureTask() not implemented by stub")
	}
	return r.EnsureTaskFunc(ctx, params)
}

func (r *StubRepo) ListTasks(ctx context.Context, userID string) ([]TaskState, error) {
	if r.ListTasksFunc == nil {
		return nil, errors.New("ListTasks() not implemented by stub")
	}
	return r.ListTasksFunc(ctx, userID)
}

func (r *StubRepo) FindTask(ctx context.Context, id string) (Task, error) {
	if r.FindTaskFunc == nil {
		return Task{}, errors.New("FindTask() not implemented by stub")
	}
	return r.FindTaskFunc(ctx, id)
}

func (r *StubRepo) DeactivateTask(ctx context.Context, id string) (Task, error) {
	if r.DeactivateTaskFunc == nil {
		return Task{}, errors.New("DeactivateTask() not implemented by stub")
	}
	return r.DeactivateTaskFunc(ctx, id)
}

func (r *StubRepo) Complete(ctx context.Context, userID string, task Task) (bool, error) {
	if r.CompleteFunc == nil {
		return false, errors.New("Complete() not implemented by stub")
	}
	return r.CompleteFunc(ctx, userID, task)
}

func (r *StubRepo) Balance(ctx context.Context, userID string) (int, error) {
	if r.BalanceFunc == nil {
		return 0, errors.New("Balance() not implemented by stub")
	}
	return r.BalanceFunc(ctx, userID)
}

type StubService struct {
	TasksFunc          func(ctx context.Context, userID string) ([]TaskState, error)
	CompleteFunc       func(ctx context.Context, userID, taskID string) (*Task, error)
	BalanceFunc        func(ctx context.Context, userID string) (int, error)
	CreateTaskFunc     func(ctx context.Context, params CreateTaskParams) (*Task, error)
	DeactivateTaskFunc func(ctx context.Context, id string) (*Task, error)
}

var _ LoyaltyService = (*StubService)(nil)

func (s *StubService) Tasks(ctx context.Context, userID string) ([]TaskState, error) {
	if s.TasksFunc == nil {
		return nil, errors.New("Tasks() not implemented by stub")
	}
	return s.TasksFunc(ctx, userID)
}

func (s *StubService) Complete(ctx context.Context, userID, taskID string) (*Task, error) {
	if s.CompleteFunc == nil {
		return nil, errors.New("Complete() not implemented by stub")
	}
	return s.CompleteFunc(ctx, userID, taskID)
}

func (s *StubService) Balance(ctx context.Context, userID string) (int, error) {
	if s.BalanceFunc == nil {
		return 0, errors.New("Balance() not implemented by stub")
	}
	return s.BalanceFunc(ctx, userID)
}

func (s *StubService) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	if s.CreateTaskFunc == nil {
		return nil, errors.New("CreateTask() not implemented by stub")
	}
	return s.CreateTaskFunc(ctx, params)
}

func (s *StubService) DeactivateTask(ctx context.Context, id string) (*Task, error) {
	if s.DeactivateTaskFunc == nil {
		return nil, errors.New("DeactivateTask() not implemented by stub")
	}
	return s.DeactivateTaskFunc(ctx, id)
}
