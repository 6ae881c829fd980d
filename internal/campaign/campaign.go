package campaign

import (
	"time"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/platform/db"
)

type Audience string

const (
	AudienceAll        Audience = "all"
	AudienceCardOwners Audience = "card_owners"
)

type Campaign struct {
	ID        string
	Subject   string
	HTML      string
	Audience  Audience
	CreatedBy string
	CreatedAt time.Time
}

// Run records one dispatch. CampaignID is nil for one-off bulk sends.
type Run struct {
	ID           string
	CampaignID   *string
	Subject      string
	Recipients   int
	Chunks       int
	FailedChunks int
	StartedAt    time.Time
	CompletedAt  time.Time
}

// Chunk splits recipients into consecutive groups of at most size addresses. A size outside
// 1..config.MaxChunkSize is clamped to config.MaxChunkSize.
func Chunk(recipients []string, size int) [][]string {
	if size <= 0 || size > config.MaxChunkSize {
		size = config.MaxChunkSize
	}

	chunks := make([][]string, 0, (len(recipients)+size-1)/size)
	for start := 0; start < len(recipients); start += size {
		end := min(start+size, len(recipients))
		chunks = append(chunks, recipients[start:end:end])
	}
	return chunks
}

type Module struct {
	svc     *Service
	handler *Handler
}

func (m *Module) Service() *Service {
	return m.svc
}

func (m *Module) Handler() *Handler {
	return m.handler
}

func NewModule(dbExec db.Executor, cfg *config.Campaign, audiences AudienceSource, mailer Mailer) *Module {
	svc := NewService(NewRepository(dbExec), cfg, audiences, mailer)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
