package auth

import (
	"context"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

// SQLRepository holds the auth-only writes on the users table.
type SQLRepository struct {
	db db.Executor
}

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

var _ Repository = (*SQLRepository)(nil)

// Verify stamps verified_at once. A second call reports ErrUserNotFound.
func (r *SQLRepository) Verify(ctx context.Context, userID string) error {
	const query = `
	UPDATE users SET verified_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND verified_at IS NULL`

	if err := r.updateOne(ctx, query, userID); err != nil {
		return fmt.Errorf("verify user %s: %w", userID, err)
	}
	return nil
}

func (r *SQLRepository) ChangePassword(ctx context.Context, userID, passwordHash string) error {
	const query = "UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1"

	if err := r.updateOne(ctx, query, userID, passwordHash); err != nil {
		return fmt.Errorf("change password of %s: %w", userID, err)
	}
	return nil
}

func (r *SQLRepository) updateOne(ctx context.Context, query string, args ...any) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}
