package invoice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var (
	ErrNotFound   = errors.New("invoice not found")
	ErrNotPending = errors.New("invoice is not pending")
)

type CreateParams struct {
	Number    string
	UserID    string
	Plan      string
	Amount    int64
	Currency  string
	PromoCode *string
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = "id, number, user_id, plan, amount, currency, payment_ref, promo_code, status, paid_at, created_at, updated_at"

func scan(row interface{ Scan(dest ...any) error }) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.Number, &inv.UserID, &inv.Plan, &inv.Amount, &inv.Currency, &inv.PaymentRef,
		&inv.PromoCode, &inv.Status, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Invoice, error) {
	const query = `
	INSERT INTO invoices (number, user_id, plan, amount, currency, promo_code)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING ` + columns

	inv, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		params.Number, params.UserID, params.Plan, params.Amount, params.Currency, params.PromoCode))
	if err != nil {
		return Invoice{}, fmt.Errorf("insert invoice %s: %w", params.Number, err)
	}
	return inv, nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]Invoice, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query invoices: %w", err)
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoices: %w", err)
	}

	return invoices, nil
}

func (r *SQLRepository) ListByUser(ctx context.Context, userID string) ([]Invoice, error) {
	return r.query(ctx, "SELECT "+columns+" FROM invoices WHERE user_id = $1 ORDER BY created_at DESC", userID)
}

func (r *SQLRepository) ListByStatus(ctx context.Context, status Status) ([]Invoice, error) {
	return r.query(ctx, "SELECT "+columns+" FROM invoices WHERE status = $1 ORDER BY created_at", status)
}

func (r *SQLRepository) MarkPaid(ctx context.Context, id, paymentRef string) (Invoice, error) {
	const query = `
	UPDATE invoices SET status = 'paid', payment_ref = $2, paid_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING ` + columns

	conn := db.Conn(ctx, r.db)
	inv, err := scan(conn.QueryRowContext(ctx, query, id, paymentRef))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, missingOrSettled(ctx, conn, "SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1)", id)
		}
		return Invoice{}, fmt.Errorf("mark invoice %s paid: %w", id, err)
	}
	return inv, nil
}

func (r *SQLRepository) Cancel(ctx context.Context, id, userID string) (Invoice, error) {
	const query = `
	UPDATE invoices SET status = 'cancelled', updated_at = NOW()
	WHERE id = $1 AND user_id = $2 AND status = 'pending'
	RETURNING ` + columns

	conn := db.Conn(ctx, r.db)
	inv, err := scan(conn.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Invoice{}, missingOrSettled(ctx, conn, "SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1 AND user_id = $2)", id, userID)
		}
		return Invoice{}, fmt.Errorf("cancel invoice %s: %w", id, err)
	}
	return inv, nil
}

// missingOrSettled tells apart an invoice that does not exist from one that left the pending
// state.
func missingOrSettled(ctx context.Context, conn db.Executor, query string, args ...any) error {
	var exists bool
	if err := conn.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return fmt.Errorf("check invoice: %w", err)
	}
	if exists {
		return ErrNotPending
	}
	return ErrNotFound
}
