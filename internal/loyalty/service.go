package loyalty

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/finderid/internal/config"
)

var ErrSystemTask = errors.New("system tasks are awarded automatically")

const defaultFirstPaymentPoints = 100

type Repository interface {
	CreateTask(ctx context.Context, params CreateTaskParams) (Task, error)
	EnsureTask(ctx context.Context, params CreateTaskParams) (Task, error)
	ListTasks(ctx context.Context, userID string) ([]TaskState, error)
	FindTask(ctx context.Context, id string) (Task, error)
	DeactivateTask(ctx context.Context, id string) (Task, error)
	Complete(ctx context.Context, userID string, task Task) (bool, error)
	Balance(ctx context.Context, userID string) (int, error)
}

type Service struct {
	repo   Repository
	system map[string]CreateTaskParams
}

var _ LoyaltyService = (*Service)(nil)

func NewService(repo Repository, cfg *config.Loyalty) *Service {
	points := cfg.FirstPaymentPoints
	if points <= 0 {
		points = defaultFirstPaymentPoints
	}

	return &Service{
		repo: repo,
		system: map[string]CreateTaskParams{
			TaskFirstPayment: {Key: TaskFirstPayment, Title: "Make your first payment", Points: points, System: true},
		},
	}
}

func (s *Service) Tasks(ctx context.Context, userID string) ([]TaskState, error) {
	tasks, err := s.repo.ListTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list loyalty tasks: %w", err)
	}
	return tasks, nil
}

// Complete marks an active, user-completable task done. Each task completes once per user.
func (s *Service) Complete(ctx context.Context, userID, taskID string) (*Task, error) {
	task, err := s.repo.FindTask(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("complete loyalty task: %w", err)
	}

	if !task.Active {
		return nil, ErrTaskNotFound
	}
	if task.System {
		return nil, ErrSystemTask
	}

	ok, err := s.repo.Complete(ctx, userID, task)
	if err != nil {
		return nil, fmt.Errorf("complete loyalty task: %w", err)
	}
	if !ok {
		return nil, ErrAlreadyCompleted
	}

	slog.Info("loyalty task completed", "user_id", userID, "task", task.Key, "points", task.Points)
	return &task, nil
}

func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	balance, err := s.repo.Balance(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get loyalty balance: %w", err)
	}
	return balance, nil
}

// Award grants the system task key to userID. It reports whether points were granted; a
// second award of the same task is a no-op.
func (s *Service) Award(ctx context.Context, userID, key string) (bool, error) {
	params, ok := s.system[key]
	if !ok {
		return false, fmt.Errorf("award %q: %w", key, ErrTaskNotFound)
	}

	task, err := s.repo.EnsureTask(ctx, params)
	if err != nil {
		return false, fmt.Errorf("award %q: %w", key, err)
	}

	granted, err := s.repo.Complete(ctx, userID, task)
	if err != nil {
		return false, fmt.Errorf("award %q: %w", key, err)
	}

	if granted {
		slog.Info("loyalty points awarded", "user_id", userID, "task", key, "points", task.Points)
	}
	return granted, nil
}

func (s *Service) CreateTask(ctx context.Context, params CreateTaskParams) (*Task, error) {
	params.System = false
	task, err := s.repo.CreateTask(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create loyalty task: %w", err)
	}
	return &task, nil
}

func (s *Service) DeactivateTask(ctx context.Context, id string) (*Task, error) {
	task, err := s.repo.DeactivateTask(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("deactivate loyalty task: %w", err)
	}
	return &task, nil
}
