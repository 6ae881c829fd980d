package message

import (
	"sort"
	"time"

	"github.com/ferdiebergado/finderid/internal/platform/db"
	"github.com/ferdiebergado/finderid/internal/platform/realtime"
)

// Table names the change feed of messages.
const Table = "messages"

const unknownName = "Unknown user"

type Message struct {
	ID          string     `json:"id"`
	SenderID    string     `json:"sender_id"`
	RecipientID string     `json:"recipient_id"`
	Body        string     `json:"body"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Counterpart returns the other participant of m as seen by userID.
func (m *Message) Counterpart(userID string) string {
	if m.SenderID == userID {
		return m.RecipientID
	}
	return m.SenderID
}

type Conversation struct {
	CounterpartID   string
	CounterpartName string
	LastMessage     Message
	Unread          int
}

// Aggregate groups the messages involving userID by counterpart. Unread counts only messages
// received by userID. Conversations are ordered by their last message, newest first, with ties
// broken by counterpart id.
func Aggregate(userID string, msgs []Message, names map[string]string) []Conversation {
	byCounterpart := make(map[string]*Conversation)
	for _, m := range msgs {
		other := m.Counterpart(userID)
		c, ok := byCounterpart[other]
		if !ok {
			name, known := names[other]
			if !known || name == "" {
				name = unknownName
			}
			c = &Conversation{CounterpartID: other, CounterpartName: name, LastMessage: m}
			byCounterpart[other] = c
		} else if m.CreatedAt.After(c.LastMessage.CreatedAt) {
			c.LastMessage = m
		}

		if m.RecipientID == userID && m.ReadAt == nil {
			c.Unread++
		}
	}

	convs := make([]Conversation, 0, len(byCounterpart))
	for _, c := range byCounterpart {
		convs = append(convs, *c)
	}

	sort.Slice(convs, func(i, j int) bool {
		a, b := convs[i].LastMessage.CreatedAt, convs[j].LastMessage.CreatedAt
		if !a.Equal(b) {
			return a.After(b)
		}
		return convs[i].CounterpartID < convs[j].CounterpartID
	})
	return convs
}

// Counterparts lists the distinct counterparts of userID in msgs.
func Counterparts(userID string, msgs []Message) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, m := range msgs {
		other := m.Counterpart(userID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids
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

func NewModule(dbExec db.Executor, users Users, pub realtime.Publisher, notifier Notifier) *Module {
	svc := NewService(NewRepository(dbExec), users, pub, notifier)
	return &Module{
		svc:     svc,
		handler: NewHandler(svc),
	}
}
