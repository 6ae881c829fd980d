package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrInvalidStatus = errors.New("document status does not allow this change")
)

type CreateParams struct {
	ReporterID  string
	Kind        Kind
	DocType     string
	DocNumber   string
	HolderName  string
	Location    string
	Contact     string
	Description string
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const columns = `id, reporter_id, kind, doc_type, doc_number, normalized_number, holder_name, location,
	contact, description, status, reviewed_at, created_at, updated_at`

func scan(row interface{ Scan(dest ...any) error }) (Document, error) {
	var d Document
	err := row.Scan(&d.ID, &d.ReporterID, &d.Kind, &d.DocType, &d.DocNumber, &d.NormalizedNumber, &d.HolderName,
		&d.Location, &d.Contact, &d.Description, &d.Status, &d.ReviewedAt, &d.CreatedAt, &d.UpdatedAt)
	return d, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Document, error) {
	const query = `
	INSERT INTO documents (reporter_id, kind, doc_type, doc_number, normalized_number, holder_name, location, contact, description)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING ` + columns

	d, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query,
		params.ReporterID, params.Kind, params.DocType, params.DocNumber, NormalizeNumber(params.DocNumber),
		params.HolderName, params.Location, params.Contact, params.Description))
	if err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	return d, nil
}

func (r *SQLRepository) query(ctx context.Context, query string, args ...any) ([]Document, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		d, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}

	return docs, nil
}

func (r *SQLRepository) ListByReporter(ctx context.Context, reporterID string) ([]Document, error) {
	return r.query(ctx, "SELECT "+columns+" FROM documents WHERE reporter_id = $1 ORDER BY created_at DESC", reporterID)
}

func (r *SQLRepository) ListByStatus(ctx context.Context, status Status) ([]Document, error) {
	return r.query(ctx, "SELECT "+columns+" FROM documents WHERE status = $1 ORDER BY created_at", status)
}

// SearchApproved returns approved reports with the normalized number. An empty docType matches
// every type.
func (r *SQLRepository) SearchApproved(ctx context.Context, normalized, docType string, limit int) ([]Document, error) {
	const query = `
	SELECT ` + columns + `
	FROM documents
	WHERE status = 'approved' AND normalized_number = $1 AND ($2 = '' OR doc_type = $2)
	ORDER BY created_at DESC
	LIMIT $3`

	return r.query(ctx, query, normalized, docType, limit)
}

// FindMatches returns approved reports of kind for the same document.
func (r *SQLRepository) FindMatches(ctx context.Context, kind Kind, normalized, docType string) ([]Document, error) {
	const query = `
	SELECT ` + columns + `
	FROM documents
	WHERE status = 'approved' AND kind = $1 AND normalized_number = $2 AND doc_type = $3
	ORDER BY created_at`

	return r.query(ctx, query, kind, normalized, docType)
}

func (r *SQLRepository) Find(ctx context.Context, id string) (Document, error) {
	d, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+columns+" FROM documents WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, fmt.Errorf("find document %s: %w", id, err)
	}
	return d, nil
}

// Review moves a pending report to status and stamps the review time.
func (r *SQLRepository) Review(ctx context.Context, id string, status Status) (Document, error) {
	const query = `
	UPDATE documents SET status = $2, reviewed_at = NOW(), updated_at = NOW()
	WHERE id = $1 AND status = 'pending'
	RETURNING ` + columns

	return r.transition(ctx, query, id, id, status)
}

// MarkReturned closes an approved report filed by reporterID.
func (r *SQLRepository) MarkReturned(ctx context.Context, id, reporterID string) (Document, error) {
	const query = `
	UPDATE documents SET status = 'returned', updated_at = NOW()
	WHERE id = $1 AND reporter_id = $2 AND status = 'approved'
	RETURNING ` + columns

	return r.transition(ctx, query, id, id, reporterID)
}

func (r *SQLRepository) transition(ctx context.Context, query, id string, args ...any) (Document, error) {
	d, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, args...))
	if err == nil {
		return d, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("update document %s: %w", id, err)
	}

	if _, err := r.Find(ctx, id); err != nil {
		return Document{}, err
	}
	return Document{}, ErrInvalidStatus
}
