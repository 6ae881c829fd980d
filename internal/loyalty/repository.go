package loyalty

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var (
	ErrTaskNotFound     = errors.New("loyalty task not found")
	ErrDuplicateTask    = errors.New("loyalty task key already exists")
	ErrAlreadyCompleted = errors.New("loyalty task already completed")
)

type CreateTaskParams struct {
	Key    string
	Title  string
	Points int
	System bool
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const taskColumns = "id, key, title, points, active, system, created_at"

func scanTask(row interface{ Scan(dest ...any) error }) (Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Key, &t.Title, &t.Points, &t.Active, &t.System, &t.CreatedAt)
	return t, err
}

func (r *SQLRepository) CreateTask(ctx context.Context, params CreateTaskParams) (Task, error) {
	const query = `
	INSERT INTO loyalty_tasks (key, title, points, system)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (key) DO NOTHING
	RETURNING ` + taskColumns

	t, err := scanTask(db.Conn(ctx, r.db).QueryRowContext(ctx, query, params.Key, params.Title, params.Points, params.System))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrDuplicateTask
		}
		return Task{}, fmt.Errorf("insert loyalty task %s: %w", params.Key, err)
	}
	return t, nil
}

// EnsureTask returns the task with params.Key, creating it when it does not exist. The points
// of an existing task are reset to params.Points.
func (r *SQLRepository) EnsureTask(ctx context.Context, params CreateTaskParams) (Task, error) {
	const query = `
	INSERT INTO loyalty_tasks (key, title, points, system)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (key) DO UPDATE SET points = EXCLUDED.points
	RETURNING ` + taskColumns

	t, err := scanTask(db.Conn(ctx, r.db).QueryRowContext(ctx, query, params.Key, params.Title, params.Points, params.System))
	if err != nil {
		return Task{}, fmt.Errorf("ensure loyalty task %s: %w", params.Key, err)
	}
	return t, nil
}

func (r *SQLRepository) ListTasks(ctx context.Context, userID string) ([]TaskState, error) {
	const query = `
	SELECT t.id, t.key, t.title, t.points, t.active, t.system, t.created_at, c.completed_at
	FROM loyalty_tasks t
	LEFT JOIN loyalty_completions c ON c.task_id = t.id AND c.user_id = $1
	WHERE t.active AND NOT t.system
	ORDER BY t.points, t.title`

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query loyalty tasks: %w", err)
	}
	defer rows.Close()

	var tasks []TaskState
	for rows.Next() {
		var s TaskState
		if err := rows.Scan(&s.ID, &s.Key, &s.Title, &s.Points, &s.Active, &s.System, &s.CreatedAt, &s.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan loyalty task: %w", err)
		}
		s.Completed = s.CompletedAt != nil
		tasks = append(tasks, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loyalty tasks: %w", err)
	}

	return tasks, nil
}

func (r *SQLRepository) FindTask(ctx context.Context, id string) (Task, error) {
	t, err := scanTask(db.Conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+taskColumns+" FROM loyalty_tasks WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("find loyalty task %s: %w", id, err)
	}
	return t, nil
}

func (r *SQLRepository) DeactivateTask(ctx context.Context, id string) (Task, error) {
	const query = "UPDATE loyalty_tasks SET active = FALSE, updated_at = NOW() WHERE id = $1 RETURNING " + taskColumns

	t, err := scanTask(db.Conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("deactivate loyalty task %s: %w", id, err)
	}
	return t, nil
}

// Complete records a completion of task for userID. It reports false when the user had
// already completed the task.
func (r *SQLRepository) Complete(ctx context.Context, userID string, task Task) (bool, error) {
	const query = `
	INSERT INTO loyalty_completions (user_id, task_id, points)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, task_id) DO NOTHING`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, userID, task.ID, task.Points)
	if err != nil {
		return false, fmt.Errorf("complete loyalty task %s: %w", task.Key, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("complete loyalty task %s: %w", task.Key, err)
	}
	return n == 1, nil
}

func (r *SQLRepository) Balance(ctx context.Context, userID string) (int, error) {
	const query = "SELECT COALESCE(SUM(points), 0) FROM loyalty_completions WHERE user_id = $1"

	var balance int
	if err := db.Conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("sum loyalty points of %s: %w", userID, err)
	}
	return balance, nil
}
