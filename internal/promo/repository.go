package promo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var (
	ErrNotFound    = errors.New("promo code not found")
	ErrDuplicate   = errors.New("promo code already taken")
	ErrAlreadyPaid = errors.New("promo code already paid out")
)

type CreateParams struct {
	UserID    string
	Code      string
	Reward    int64
	ExpiresAt *time.Time
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, user_id, code, reward, uses, active, paid, paid_at, expires_at, created_at, updated_at"

func scan(row interface{ Scan(dest ...any) error }) (Promo, error) {
	var p Promo
	err := row.Scan(&p.ID, &p.UserID, &p.Code, &p.Reward, &p.Uses, &p.Active, &p.Paid, &p.PaidAt, &p.ExpiresAt, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Promo, error) {
	const query = `
	INSERT INTO promo_codes (user_id, code, reward, expires_at)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (code) DO NOTHING
	RETURNING ` + columns

	p, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, params.UserID, params.Code, params.Reward, params.ExpiresAt))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Promo{}, ErrDuplicate
		}
		return Promo{}, fmt.Errorf("insert promo code %s: %w", params.Code, err)
	}
	return p, nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]Promo, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query promo codes: %w", err)
	}
	defer rows.Close()

	var promos []Promo
	for rows.Next() {
		p, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan promo code: %w", err)
		}
		promos = append(promos, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate promo codes: %w", err)
	}

	return promos, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]Promo, error) {
	return r.query(ctx, "SELECT "+columns+" FROM promo_codes WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

func (r *SQLRepository) List(ctx context.Context) ([]Promo, error) {
	return r.query(ctx, "SELECT "+columns+" FROM promo_codes ORDER BY paid, uses DESC, created_at DESC")
}

func (r *SQLRepository) CountActiveByUser(ctx context.Context, userID string) (int, error) {
	const query = `
	SELECT COUNT(*) FROM promo_codes
	WHERE user_id = $1 AND active AND NOT paid AND (expires_at IS NULL OR expires_at > NOW())`

	var count int
	if err := db.Conn(ctx, r.db).QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count active promo codes of %s: %w", userID, err)
	}
	return count, nil
}

func (r *SQLRepository) FindByCode(ctx context.Context, code string) (Promo, error) {
	p, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+columns+" FROM promo_codes WHERE code = $1", code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Promo{}, ErrNotFound
		}
		return Promo{}, fmt.Errorf("find promo code %s: %w", code, err)
	}
	return p, nil
}

func (r *SQLRepository) IncrementUses(ctx context.Context, code string) (Promo, error) {
	const query = "UPDATE promo_codes SET uses = uses + 1, updated_at = NOW() WHERE code = $1 RETURNING " + columns

	p, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Promo{}, ErrNotFound
		}
		return Promo{}, fmt.Errorf("increment uses of %s: %w", code, err)
	}
	return p, nil
}

func (r *SQLRepository) Deactivate(ctx context.Context, id string) (Promo, error) {
	const query = "UPDATE promo_codes SET active = FALSE, updated_at = NOW() WHERE id = $1 RETURNING " + columns

	p, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Promo{}, ErrNotFound
		}
		return Promo{}, fmt.Errorf("deactivate promo code %s: %w", id, err)
	}
	return p, nil
}

// MarkPaid settles the payout of the code. Returns ErrAlreadyPaid when it was settled before.
func (r *SQLRepository) MarkPaid(ctx context.Context, id string) (Promo, error) {
	const query = `
	UPDATE promo_codes SET paid = TRUE, paid_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND NOT paid
	RETURNING ` + columns

	conn := db.Conn(ctx, r.db)
	p, err := scan(conn.QueryRowContext(ctx, query, id))
	if err == nil {
		return p, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return Promo{}, fmt.Errorf("mark promo code %s paid: %w", id, err)
	}

	var exists bool
	if err := conn.QueryRowContext(ctx, "SELECT EXISTS (SELECT 1 FROM promo_codes WHERE id = $1)", id).Scan(&exists); err != nil {
		return Promo{}, fmt.Errorf("check promo code %s: %w", id, err)
	}
	if exists {
		return Promo{}, ErrAlreadyPaid
	}
	return Promo{}, ErrNotFound
}
