package campaign

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/google/uuid"
)

var (
	ErrUnknownAudience = errors.New("unknown campaign audience")
	ErrNoRecipients    = errors.New("no recipients")
)

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Campaign, error)
	List(ctx context.Context) ([]Campaign, error)
	Find(ctx context.Context, id string) (Campaign, error)
	InsertRun(ctx context.Context, run Run) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
}

// AudienceSource resolves the addresses behind each audience.
type AudienceSource interface {
	VerifiedEmails(ctx context.Context) ([]string, error)
	CardOwnerEmails(ctx context.Context) ([]string, error)
}

type Mailer interface {
	SendBCC(to string, bcc []string, subject, htmlBody string) error
}

type Service struct {
	repo      Repository
	cfg       *config.Campaign
	audiences AudienceSource
	mailer    Mailer
	now       func() time.Time
}

var _ CampaignService = (*Service)(nil)

func NewService(repo Repository, cfg *config.Campaign, audiences AudienceSource, mailer Mailer) *Service {
	return &Service{
		repo:      repo,
		cfg:       cfg,
		audiences: audiences,
		mailer:    mailer,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Campaign, error) {
	if params.Audience != AudienceAll && params.Audience != AudienceCardOwners {
		return nil, fmt.Errorf("create campaign for %q: %w", params.Audience, ErrUnknownAudience)
	}

	c, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}

	slog.Info("campaign created", "id", c.ID, "audience", c.Audience, "created_by", c.CreatedBy)
	return &c, nil
}

func (s *Service) List(ctx context.Context) ([]Campaign, error) {
	campaigns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	return campaigns, nil
}

func (s *Service) Runs(ctx context.Context, limit int) ([]Run, error) {
	runs, err := s.repo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list campaign runs: %w", err)
	}
	return runs, nil
}

func (s *Service) recipients(ctx context.Context, audience Audience) ([]string, error) {
	switch audience {
	case AudienceAll:
		return s.audiences.VerifiedEmails(ctx)
	case AudienceCardOwners:
		return s.audiences.CardOwnerEmails(ctx)
	default:
		return nil, fmt.Errorf("resolve %q: %w", audience, ErrUnknownAudience)
	}
}

// Send dispatches the stored campaign id to its audience.
func (s *Service) Send(ctx context.Context, id string) (*Run, error) {
	c, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("send campaign: %w", err)
	}

	recipients, err := s.recipients(ctx, c.Audience)
	if err != nil {
		return nil, fmt.Errorf("send campaign %s: %w", id, err)
	}

	return s.dispatch(ctx, &c.ID, c.Subject, c.HTML, recipients)
}

type BulkParams struct {
	Subject    string
	HTML       string
	Recipients []string
}

// SendBulk dispatches a one-off message to an explicit list of addresses. A list with no
// usable address is rejected before anything is sent or recorded.
func (s *Service) SendBulk(ctx context.Context, params BulkParams) (*Run, error) {
	if len(dedupe(params.Recipients)) == 0 {
		return nil, ErrNoRecipients
	}
	return s.dispatch(ctx, nil, params.Subject, params.HTML, params.Recipients)
}

// dispatch sends one BCC message per chunk. A failed chunk is logged and skipped. The run is
// recorded whatever the outcome of the chunks, including an empty audience (zero chunks).
func (s *Service) dispatch(ctx context.Context, campaignID *string, subject, html string, recipients []string) (*Run, error) {
	recipients = dedupe(recipients)

	chunks := Chunk(recipients, s.cfg.ChunkSize)
	run := Run{
		ID:         uuid.NewString(),
		CampaignID: campaignID,
		Subject:    subject,
		Recipients: len(recipients),
		Chunks:     len(chunks),
		StartedAt:  s.now().UTC(),
	}

	logger := slog.With("run_id", run.ID, "subject", subject)
	logger.Info("campaign dispatch started", "recipients", run.Recipients, "chunks", run.Chunks)

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			run.FailedChunks += len(chunks) - i
			logger.Error("campaign dispatch interrupted", "chunk", i+1, "reason", err)
			break
		}

		if err := s.mailer.SendBCC(s.cfg.PlaceholderTo, chunk, subject, html); err != nil {
			run.FailedChunks++
			logger.Error("campaign chunk failed", "chunk", i+1, "size", len(chunk), "reason", err)
			continue
		}
		logger.Debug("campaign chunk sent", "chunk", i+1, "size", len(chunk))
	}

	run.CompletedAt = s.now().UTC()

	if err := s.repo.InsertRun(context.WithoutCancel(ctx), run); err != nil {
		return &run, fmt.Errorf("record campaign run: %w", err)
	}

	logger.Info("campaign dispatch complete", "chunks", run.Chunks, "failed_chunks", run.FailedChunks)
	return &run, nil
}

// dedupe drops blank and repeated addresses, comparing case-insensitively and keeping the
// first spelling.
func dedupe(addrs []string) []string {
	seen := make(map[string]struct{}, len(addrs))
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		key := strings.ToLower(a)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, a)
	}
	return out
}
