package mcard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound  = errors.New("card not found")
	ErrDuplicate = errors.New("card slug already taken")
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint violation.
const uniqueViolation = "23505"

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, user_id, slug, full_name, title, company, phone, email, website, bio, theme, is_public, views, created_at, updated_at"

func scan(row interface{ Scan(dest ...any) error }) (Card, error) {
	var c Card
	err := row.Scan(&c.ID, &c.UserID, &c.Slug, &c.FullName, &c.Title, &c.Company, &c.Phone, &c.Email, &c.Website,
		&c.Bio, &c.Theme, &c.IsPublic, &c.Views, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *SQLRepository) Create(ctx context.Context, userID, slug string, f Fields) (Card, error) {
	const query = `
	INSERT INTO mcards (user_id, slug, full_name, title, company, phone, email, website, bio, theme, is_public)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING ` + columns

	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		userID, slug, f.FullName, f.Title, f.Company, f.Phone, f.Email, f.Website, f.Bio, f.Theme, f.IsPublic))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return Card{}, ErrDuplicate
		}
		return Card{}, fmt.Errorf("insert card %s: %w", slug, err)
	}
	return c, nil
}

func (r *SQLRepository) Find(ctx context.Context, id string) (Card, error) {
	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+columns+" FROM mcards WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("find card %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLRepository) Update(ctx context.Context, id string, f Fields) (Card, error) {
	const query = `
	UPDATE mcards
	SET full_name = $2, title = $3, company = $4, phone = $5, email = $6, website = $7, bio = $8, theme = $9,
		is_public = $10, updated_at = NOW()
	WHERE id = $1
	RETURNING ` + columns

	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		id, f.FullName, f.Title, f.Company, f.Phone, f.Email, f.Website, f.Bio, f.Theme, f.IsPublic))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("update card %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	res, err := db.Conn(ctx, r.db).ExecContext(ctx, "DELETE FROM mcards WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete card %s: %w", id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]Card, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []Card
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cards: %w", err)
	}

	return cards, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]Card, error) {
	return r.query(ctx, "SELECT "+columns+" FROM mcards WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

// View returns the public card with slug and counts the visit.
func (r *SQLRepository) View(ctx context.Context, slug string) (Card, error) {
	const query = `
	UPDATE mcards SET views = views + 1
	WHERE slug = $1 AND is_public
	RETURNING ` + columns

	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Card{}, ErrNotFound
		}
		return Card{}, fmt.Errorf("view card %s: %w", slug, err)
	}
	return c, nil
}

// Search matches public cards whose name or company contains term, ignoring case.
func (r *SQLRepository) Search(ctx context.Context, term string, limit int) ([]Card, error) {
	const query = `
	SELECT ` + columns + `
	FROM mcards
	WHERE is_public AND (full_name ILIKE $1 ESCAPE '\' OR company ILIKE $1 ESCAPE '\')
	ORDER BY views DESC, full_name
	LIMIT $2`

	return r.query(ctx, query, "%"+escapeLike(term)+"%", limit)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
