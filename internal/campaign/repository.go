package campaign

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ferdiebergado/finderid/internal/platform/db"
)

var ErrNotFound = errors.New("campaign not found")

type CreateParams struct {
	Subject   string
	HTML      string
	Audience  Audience
	CreatedBy string
}

type SQLRepository struct {
	db db.Executor
}

var _ Repository = (*SQLRepository)(nil)

func NewRepository(dbExec db.Executor) *SQLRepository {
	return &SQLRepository{db: dbExec}
}

const (
	columns    = "id, subject, html, audience, created_by, created_at"
	runColumns = "id, campaign_id, subject, recipients, chunks, failed_chunks, started_at, completed_at"
)

func scan(row interface{ Scan(dest ...any) error }) (Campaign, error) {
	var c Campaign
	err := row.Scan(&c.ID, &c.Subject, &c.HTML, &c.Audience, &c.CreatedBy, &c.CreatedAt)
	return c, err
}

func (r *SQLRepository) Create(ctx context.Context, params CreateParams) (Campaign, error) {
	const query = `
	INSERT INTO campaigns (subject, html, audience, created_by)
	VALUES ($1, $2, $3, $4)
	RETURNING ` + columns

	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, query, params.Subject, params.HTML, params.Audience, params.CreatedBy))
	if err != nil {
		return Campaign{}, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

func (r *SQLRepository) List(ctx context.Context) ([]Campaign, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, "SELECT "+columns+" FROM campaigns ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("query campaigns: %w", err)
	}
	defer rows.Close()

	var campaigns []Campaign
	for rows.Next() {
		c, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *SQLRepository) Find(ctx context.Context, id string) (Campaign, error) {
	c, err := scan(db.Conn(ctx, r.db).QueryRowContext(ctx, "SELECT "+columns+" FROM campaigns WHERE id = $1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Campaign{}, ErrNotFound
		}
		return Campaign{}, fmt.Errorf("find campaign %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLRepository) InsertRun(ctx context.Context, run Run) error {
	const query = "INSERT INTO campaign_runs (" + runColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8)"

	_, err := db.Conn(ctx, r.db).ExecContext(ctx, query,
		run.ID, run.CampaignID, run.Subject, run.Recipients, run.Chunks, run.FailedChunks, run.StartedAt, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert campaign run %s: %w", run.ID, err)
	}
	return nil
}

func (r *SQLRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := db.Conn(ctx, r.db).QueryContext(ctx, "SELECT "+runColumns+" FROM campaign_runs ORDER BY started_at DESC LIMIT $1", limit)
	if err != nil {
		return nil, fmt.Errorf("query campaign runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CampaignID, &run.Subject, &run.Recipients, &run.Chunks,
			&run.FailedChunks, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan campaign run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate campaign runs: %w", err)
	}

	return runs, nil
}
