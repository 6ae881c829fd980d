package mcard

import (
	"strings"
	"time"
	"unicode"

	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/google/uuid"
)

const maxSlugBase = 40

type Card struct {
	ID        string
	UserID    string
	Slug      string
	FullName  string
	Title     string
	Company   string
	Phone     string
	Email     string
	Website   string
	Bio       string
	Theme     string
	IsPublic  bool
	Views     int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Fields are the owner-editable parts of a card.
type Fields struct {
	FullName string
	Title    string
	Company  string
	Phone    string
	Email    string
	Website  string
	Bio      string
	Theme    string
	IsPublic bool
}

// Slugify lower-cases name and joins its letter and digit runs with single dashes.
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}

	slug := strings.TrimRight(truncate(b.String(), maxSlugBase), "-")
	if slug == "" {
		slug = "card"
	}
	return slug
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	return s[:cut]
}

// NewSlug derives a unique card slug from name.
func NewSlug(name string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return Slugify(name) + "-" + suffix
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

func NewModule(dbExec db.Executor) *Module {
	svc := NewService(NewRepository(dbExec))
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
