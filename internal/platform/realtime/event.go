package realtime

import (
	"sync"
	"time"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ChangeEvent describes a row change on a table owned by the receiving user.
// Subscribers treat every event as a signal to reload; Record is informational.
type ChangeEvent struct {
	Table     string    `json:"table"`
	Type      EventType `json:"type"`
	Record    any       `json:"record,omitempty"`
	Timestamp time.Time `json:"commit_timestamp"`
}

// Publisher delivers change events to the connected clients of a user.
type Publisher interface {
	Publish(userID string, evt ChangeEvent)
}

// NopPublisher discards every event.
type NopPublisher struct{}

func (NopPublisher) Publish(string, ChangeEvent) {}

// RecordingPublisher keeps published events in memory, for tests.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Delivery
}

type Delivery struct {
	UserID string
	Event  ChangeEvent
}

func (p *RecordingPublisher) Publish(userID string, evt ChangeEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Delivery{UserID: userID, Event: evt})
}

// Events returns a copy of the deliveries recorded so far.
func (p *RecordingPublisher) Events() []Delivery {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Delivery(nil), p.events...)
}
