package message

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, sender_id, recipient_id, body, read_at, created_at"

func scan(row interface{ Scan(dest ...any) error }) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Body, &m.ReadAt, &m.CreatedAt)
	return m, err
}

func (r *SQLRepository) Create(ctx context.Context, senderID, recipientID, body string) (Message, error) {
	const query = `
	INSERT INTO messages (sender_id, recipient_id, body)
	VALUES ($1, $2, $3)
	RETURNING ` + columns

	m, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, senderID, recipientID, body))
	if err != nil {
		return Message{}, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []Message
	for rows.Next() {
		m, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msgs = append(msgs, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	return msgs, nil
}

func (r *SQLRepository) ListInvolving(ctx context.Context, userID string) ([]Message, error) {
	const query = `
	SELECT ` + columns + `
	FROM messages
	WHERE sender_id = $1 OR recipient_id = $1
	ORDER BY created_at DESC`

	return r.query(ctx, query, userID)
}

func (r *SQLRepository) Thread(ctx context.Context, userID, otherID string, limit int) ([]Message, error) {
	const query = `
	SELECT ` + columns + ` FROM (
		SELECT ` + columns + `
		FROM messages
		WHERE (sender_id = $1 AND recipient_id = $2) OR (sender_id = $2 AND recipient_id = $1)
		ORDER BY created_at DESC
		LIMIT $3
	) latest
	ORDER BY created_at, id`

	return r.query(ctx, query, userID, otherID, limit)
}

func (r *SQLRepository) MarkThreadRead(ctx context.Context, recipientID, senderID string) (int64, error) {
	const query = `
	UPDATE messages SET read_at = NOW()
	WHERE recipient_id = $1 AND sender_id = $2 AND read_at IS NULL`

	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, recipientID, senderID)
	if err != nil {
		return 0, fmt.Errorf("mark thread read: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("mark thread read: %w", err)
	}
	return n, nil
}
