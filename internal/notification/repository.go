package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var ErrNotFound = errors.New("notification not found")

type CreateParams struct {
	UserID string
	Type   Type
	Title  string
	Body   string
	Link   string
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, user_id, type, title, body, link, read_at, created_at"

func scan(row interface{ Scan(dest ...any) error }) (Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Body, &n.Link, &n.ReadAt, &n.CreatedAt)
	return n, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Notification, error) {
	const query = `
	INSERT INTO notifications (user_id, type, title, body, link)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING ` + columns

	n, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		params.UserID, params.Type, params.Title, params.Body, params.Link))
	if err != nil {
		return Notification{}, fmt.Errorf("insert notification: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Notification, error) {
	const query = "SELECT " + columns + " FROM notifications WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT $2"

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	list := make([]Notification, 0)
	for rows.Next() {
		n, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}

	return list, nil
}

func (r *SQLRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	const query = "SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND read_at IS NULL"

	var count int
	if err := db.Conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

func (r *SQLRepository) MarkRead(ctx context.Context, id, userID string) (Notification, error) {
	const query = `
	UPDATE notifications SET read_at = COALESCE(read_at, NOW())
	WHERE id = $1 AND user_id = $2
	RETURNING ` + columns

	n, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Notification{}, ErrNotFound
		}
		return Notification{}, fmt.Errorf("mark notification read: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	const query = "UPDATE notifications SET read_at = NOW() WHERE user_id = $1 AND read_at IS NULL"

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return n, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id, userID string) error {
	const query = "DELETE FROM notifications WHERE id = $1 AND user_id = $2"

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}

	if n == 0 {
		return ErrNotFound
	}
	return nil
}
