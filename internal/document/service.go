package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ferdiebergado/finderid/internal/notification"
)

var ErrForbidden = errors.New("document belongs to another user")

type Repository interface {
	Create(ctx context.Context, params CreateParams) (Document, error)
	ListByReporter(ctx context.Context, reporterID string) ([]Document, error)
	ListByStatus(ctx context.Context, status Status) ([]Document, error)
	SearchApproved(ctx context.Context, normalized, docType string, limit int) ([]Document, error)
	FindMatches(ctx context.Context, kind Kind, normalized, docType string) ([]Document, error)
	Find(ctx context.Context, id string) (Document, error)
	Review(ctx context.Context, id string, status Status) (Document, error)
	MarkReturned(ctx context.Context, id, reporterID string) (Document, error)
}

type Notifier interface {
	Notify(ctx context.Context, params notification.CreateParams) (*notification.Notification, error)
	NotifyMany(ctx context.Context, batch []notification.CreateParams) error
}

type Service struct {
	repo     Repository
	notifier Notifier
}

var _ DocumentService = (*Service)(nil)

func NewService(repo Repository, notifier Notifier) *Service {
	return &Service{repo: repo, notifier: notifier}
}

func (s *Service) Report(ctx context.Context, params CreateParams) (*Document, error) {
	d, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("report document: %w", err)
	}

	slog.Info("document reported", "id", d.ID, "kind", d.Kind, "doc_type", d.DocType)
	return &d, nil
}

func (s *Service) Mine(ctx context.Context, reporterID string) ([]Document, error) {
	docs, err := s.repo.ListByReporter(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("list documents of %s: %w", reporterID, err)
	}
	return docs, nil
}

func (s *Service) Search(ctx context.Context, number, docType string, limit int) ([]Document, error) {
	normalized := NormalizeNumber(number)
	if normalized == "" {
		return []Document{}, nil
	}

	docs, err := s.repo.SearchApproved(ctx, normalized, docType, limit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	return docs, nil
}

func (s *Service) Pending(ctx context.Context) ([]Document, error) {
	docs, err := s.repo.ListByStatus(ctx, StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending documents: %w", err)
	}
	return docs, nil
}

// Approve publishes a pending report and notifies the people who reported the other side of
// the same document.
func (s *Service) Approve(ctx context.Context, id string) (*Document, error) {
	d, err := s.repo.Review(ctx, id, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("approve document: %w", err)
	}

	slog.Info("document approved", "id", d.ID, "kind", d.Kind)
	s.notifyApproval(ctx, &d)
	return &d, nil
}

func (s *Service) notifyApproval(ctx context.Context, d *Document) {
	matches, err := s.repo.FindMatches(ctx, d.Kind.Counterpart(), d.NormalizedNumber, d.DocType)
	if err != nil {
		slog.Error("failed to look up matching reports", "id", d.ID, "reason", err)
	}

	var batch []notification.CreateParams
	switch d.Kind {
	case KindFound:
		// every owner still looking for the document hears that it turned up
		for _, lost := range matches {
			if lost.ReporterID == d.ReporterID {
				continue
			}
			batch = append(batch, matchNotice(lost.ReporterID, d))
		}
	case KindLost:
		if len(matches) > 0 {
			batch = append(batch, matchNotice(d.ReporterID, &matches[0]))
		}
	}

	batch = append(batch, notification.CreateParams{
		UserID: d.ReporterID,
		Type:   notification.TypeDocumentApproved,
		Title:  "Your report is live",
		Body:   fmt.Sprintf("Your %s %s report was approved and is now searchable.", d.Kind, d.DocType),
		Link:   "/documents/" + d.ID,
	})

	if err := s.notifier.NotifyMany(ctx, batch); err != nil {
		slog.Error("document notifications failed", "id", d.ID, "reason", err)
	}
}

func matchNotice(userID string, found *Document) notification.CreateParams {
	return notification.CreateParams{
		UserID: userID,
		Type:   notification.TypeDocumentMatch,
		Title:  "A matching document was found",
		Body:   fmt.Sprintf("A %s with number %s was reported found near %s.", found.DocType, found.DocNumber, found.Location),
		Link:   "/documents/" + found.ID,
	}
}

func (s *Service) Reject(ctx context.Context, id string) (*Document, error) {
	d, err := s.repo.Review(ctx, id, StatusRejected)
	if err != nil {
		return nil, fmt.Errorf("reject document: %w", err)
	}

	slog.Info("document rejected", "id", d.ID)
	return &d, nil
}

func (s *Service) MarkReturned(ctx context.Context, reporterID, id string) (*Document, error) {
	current, err := s.repo.Find(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("mark document returned: %w", err)
	}
	if current.ReporterID != reporterID {
		return nil, ErrForbidden
	}

	d, err := s.repo.MarkReturned(ctx, id, reporterID)
	if err != nil {
		return nil, fmt.Errorf("mark document returned: %w", err)
	}

	slog.Info("document returned", "id", d.ID)
	return &d, nil
}
