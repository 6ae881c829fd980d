package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var ErrNotFound = errors.New("subscription not found")

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "user_id, plan, started_at, expires_at, expiry_notified_at"

func scan(row interface{ Scan(dest ...any) error }) (Subscription, error) {
	var s Subscription
	err := row.Scan(&s.UserID, &s.Plan, &s.StartedAt, &s.ExpiresAt, &s.ExpiryNotifiedAt)
	return s, err
}

func (r *SQLRepository) Find(ctx context.Context, userID string) (*Subscription, error) {
	const query = "SELECT " + columns + " FROM subscriptions WHERE user_id = $1"

	s, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find subscription of %s: %w", userID, err)
	}
	return &s, nil
}

// FindForUpdate locks the row until the surrounding transaction ends.
func (r *SQLRepository) FindForUpdate(ctx context.Context, userID string) (*Subscription, error) {
	const query = "SELECT " + columns + " FROM subscriptions WHERE user_id = $1 FOR UPDATE"

	s, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock subscription of %s: %w", userID, err)
	}
	return &s, nil
}

func (r *SQLRepository) Save(ctx context.Context, sub Subscription) (Subscription, error) {
	const query = `
	INSERT INTO subscriptions (user_id, plan, started_at, expires_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE
	SET plan = EXCLUDED.plan,
		started_at = EXCLUDED.started_at,
		expires_at = EXCLUDED.expires_at,
		updated_at = NOW()
	RETURNING ` + columns

	saved, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, sub.UserID, sub.Plan, sub.StartedAt, sub.ExpiresAt))
	if err != nil {
		return Subscription{}, fmt.Errorf("save subscription of %s: %w", sub.UserID, err)
	}
	return saved, nil
}

func (r *SQLRepository) ListExpiredUnnotified(ctx context.Context, now time.Time) ([]Subscription, error) {
	const query = `
	SELECT ` + columns + `
	FROM subscriptions
	WHERE expires_at <= $1
	AND (expiry_notified_at IS NULL OR expiry_notified_at < expires_at)
	ORDER BY expires_at`

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("query expired subscriptions: %w", err)
	}
	defer rows.Close()

	var subs []Subscription
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		subs = append(subs, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate subscriptions: %w", err)
	}

	return subs, nil
}

func (r *SQLRepository) MarkNotified(ctx context.Context, userID string, at time.Time) error {
	const query = "UPDATE subscriptions SET expiry_notified_at = $1, updated_at = NOW() WHERE user_id = $2"

	if _, err := db.Conn(ctx, r.db).ExecContext(ctx, query, at, userID); err != nil {
		return fmt.Errorf("mark subscription of %s notified: %w", userID, err)
	}
	return nil
}
