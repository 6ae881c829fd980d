package loyalty_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/loyalty"
	"github.com/google/go-cmp/cmp"
)

// memRepo keeps completions in memory so award idempotency can be observed.
type memRepo struct {
	loyalty.StubRepo

	mu          sync.Mutex
	tasks       map[string]loyalty.Task
	completions map[string]map[string]int
}

func newMemRepo(tasks ...loyalty.Task) *memRepo {
	r := &memRepo{
		tasks:       make(map[string]loyalty.Task),
		completions: make(map[string]map[string]int),
	}
	for _, t := range tasks {
		r.tasks[t.ID] = t
	}
	return r
}

func (r *memRepo) FindTask(_ context.Context, id string) (loyalty.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return loyalty.Task{}, loyalty.ErrTaskNotFound
	}
	return t, nil
}

func (r *memRepo) EnsureTask(_ context.Context, params loyalty.CreateTaskParams) (loyalty.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.tasks {
		if t.Key == params.Key {
			t.Points = params.Points
			r.tasks[t.ID] = t
			return t, nil
		}
	}
	t := loyalty.Task{ID: "sys-" + params.Key, Key: params.Key, Title: params.Title, Points: params.Points, Active: true, System: params.System}
	r.tasks[t.ID] = t
	return t, nil
}

func (r *memRepo) Complete(_ context.Context, userID string, task loyalty.Task) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	done, ok := r.completions[userID]
	if !ok {
		done = make(map[string]int)
		r.completions[userID] = done
	}
	if _, ok := done[task.ID]; ok {
		return false, nil
	}
	done[task.ID] = task.Points
	return true, nil
}

func (r *memRepo) Balance(_ context.Context, userID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, p := range r.completions[userID] {
		total += p
	}
	return total, nil
}

func TestService_Complete(t *testing.T) {
	t.Parallel()

	repo := newMemRepo(
		loyalty.Task{ID: "t1", Key: "share_card", Points: 20, Active: true},
		loyalty.Task{ID: "t2", Key: "retired", Points: 50, Active: false},
		loyalty.Task{ID: "t3", Key: loyalty.TaskFirstPayment, Points: 100, Active: true, System: true},
	)
	svc := loyalty.NewService(repo, &config.Loyalty{})
	ctx := context.Background()

	if _, err := svc.Complete(ctx, "u1", "t1"); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		task string
		want error
	}{
		{"twice", "t1", loyalty.ErrAlreadyCompleted},
		{"inactive", "t2", loyalty.ErrTaskNotFound},
		{"system", "t3", loyalty.ErrSystemTask},
		{"missing", "t9", loyalty.ErrTaskNotFound},
	}

	for _, tt := range tests {
		if _, err := svc.Complete(ctx, "u1", tt.task); !errors.Is(err, tt.want) {
			t.Errorf("%s: Complete() error = %v, want: %v", tt.name, err, tt.want)
		}
	}

	balance, err := svc.Balance(ctx, "u1")
	if err != nil {
		t.Fatal(err)
	}
	if balance != 20 {
		t.Errorf("Balance() = %d, want: 20", balance)
	}
}

func TestService_AwardOnce(t *testing.T) {
	t.Parallel()

	repo := newMemRepo()
	svc := loyalty.NewService(repo, &config.Loyalty{FirstPaymentPoints: 150})
	ctx := context.Background()

	var granted []bool
	for range 3 {
		ok, err := svc.Award(ctx, "u1", loyalty.TaskFirstPayment)
		if err != nil {
			t.Fatal(err)
		}
		granted = append(granted, ok)
	}

	if diff := cmp.Diff([]bool{true, false, false}, granted); diff != "" {
		t.Errorf("Award() results mismatch (-want +got):\n%s", diff)
	}

	balance, _ := svc.Balance(ctx, "u1")
	if balance != 150 {
		t.Errorf("Balance() = %d, want: 150", balance)
	}
}

func TestService_AwardUnknownKey(t *testing.T) {
	t.Parallel()

	svc := loyalty.NewService(newMemRepo(), &config.Loyalty{})
	if _, err := svc.Award(context.Background(), "u1", "birthday"); !errors.Is(err, loyalty.ErrTaskNotFound) {
		t.Errorf("Award() error = %v, want: %v", err, loyalty.ErrTaskNotFound)
	}
}

func TestService_CreateTaskIsNeverSystem(t *testing.T) {
	t.Parallel()

	var got loyalty.CreateTaskParams
	repo := &loyalty.StubRepo{
		CreateTaskFunc: func(_ context.Context, params loyalty.CreateTaskParams) (loyalty.Task, error) {
			got = params
			return loyalty.Task{Key: params.Key}, nil
		},
	}
	svc := loyalty.NewService(repo, &config.Loyalty{})

	if _, err := svc.CreateTask(context.Background(), loyalty.CreateTaskParams{Key: "k", Title: "T", Points: 5, System: true}); err != nil {
		t.Fatal(err)
	}
	if got.System {
		t.Error("CreateTask() passed System = true to the repository")
	}
}
