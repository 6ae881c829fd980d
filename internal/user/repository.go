package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

var _ Repository = (*SQLRepository)(nil)

type SQLRepository struct {
	db db.Executor
}

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

type CreateParams struct {
	Email        string
	DisplayName  string
	PasswordHash string
}

const userColumns = "id, email, display_name, role, password_hash, verified_at, metadata, created_at, updated_at"

func scanUser(row interface{ Scan(dest ...any) error }) (User, error) {
	var (
		u        User
		metadata []byte
	)
	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.PasswordHash, &u.VerifiedAt, &metadata, &u.CreatedAt, &u.UpdatedAt)
	u.Metadata = metadata
	return u, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (User, error) {
	const query = `
	INSERT INTO users (email, display_name, password_hash)
	VALUES ($1, $2, $3)
	ON CONFLICT (email) DO NOTHING
	RETURNING ` + userColumns

	row := db.Conn(ctx, r.db).QueryRowContext(ctx, query, params.Email, params.DisplayName, params.PasswordHash)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrDuplicate
		}
		return User{}, fmt.Errorf("insert user %s: %w", params.Email, err)
	}
	return u, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	const query = "SELECT " + userColumns + " FROM users ORDER BY created_at DESC"

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user row: %w", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate user rows: %w", err)
	}

	return users, nil
}

func (r *SQLRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE email = $1 LIMIT 1"
	return r.findOne(ctx, query, email)
}

func (r *SQLRepository) Find(ctx context.Context, userID string) (*User, error) {
	const query = "SELECT " + userColumns + " FROM users WHERE id = $1"
	return r.findOne(ctx, query, userID)
}

func (r *SQLRepository) findOne(ctx context.Context, query string, arg string) (*User, error) {
	u, err := scanUser(db.Conn(ctx, r.db).QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user %s: %w", arg, err)
	}
	return &u, nil
}

func (r *SQLRepository) DisplayNames(ctx context.Context, userIDs []string) (map[string]string, error) {
	const query = "SELECT id, display_name FROM users WHERE id = ANY($1)"

	names := make(map[string]string, len(userIDs))
	if len(userIDs) == 0 {
		return names, nil
	}

	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, userIDs)
	if err != nil {
		return nil, fmt.Errorf("query display names: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan display name: %w", err)
		}
		names[id] = name
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate display names: %w", err)
	}

	return names, nil
}

func (r *SQLRepository) VerifiedEmails(ctx context.Context) ([]string, error) {
	const query = "SELECT email FROM users WHERE verified_at IS NOT NULL ORDER BY email"
	return r.emails(ctx, query)
}

func (r *SQLRepository) CardOwnerEmails(ctx context.Context) ([]string, error) {
	const query = `
	SELECT DISTINCT u.email
	FROM users u
	JOIN mcards c ON c.user_id = u.id
	WHERE u.verified_at IS NOT NULL
	ORDER BY u.email`
	return r.emails(ctx, query)
}

func (r *SQLRepository) emails(ctx context.Context, query string) ([]string, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query emails: %w", err)
	}
	defer rows.Close()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("scan email: %w", err)
		}
		emails = append(emails, email)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate emails: %w", err)
	}

	return emails, nil
}
