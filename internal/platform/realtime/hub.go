package realtime

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// Hub fans change events out to the websocket clients of each user.
// All client bookkeeping happens on the goroutine running Run.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	deliveries chan Delivery
	clients    map[string]map[*Client]struct{}
	counts     chan countRequest
	done       chan struct{}
}

type countRequest struct {
	userID string
	reply  chan int
}

var _ Publisher = (*Hub)(nil)

func NewHub(buffer int) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliveries: make(chan Delivery, buffer),
		clients:    make(map[string]map[*Client]struct{}),
		counts:     make(chan countRequest),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and deliveries until ctx is cancelled, then closes
// every client's send channel.
func (h *Hub) Run(ctx context.Context) error {
	slog.Info("Realtime hub started.")
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			for userID, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, userID)
			}
			slog.Info("Realtime hub stopped.")
			return nil

		case c := <-h.register:
			set, ok := h.clients[c.userID]
			if !ok {
				set = make(map[*Client]struct{})
				h.clients[c.userID] = set
			}
			set[c] = struct{}{}
			slog.Debug("realtime client registered", "client_id", c.id, "user_id", c.userID)

		case c := <-h.unregister:
			h.remove(c)

		case d := <-h.deliveries:
			h.deliver(d)

		case req := <-h.counts:
			req.reply <- len(h.clients[req.userID])
		}
	}
}

func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.userID]
	if !ok {
		return
	}

	if _, ok := set[c]; !ok {
		return
	}

	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.userID)
	}
	slog.Debug("realtime client unregistered", "client_id", c.id, "user_id", c.userID)
}

func (h *Hub) deliver(d Delivery) {
	set := h.clients[d.UserID]
	if len(set) == 0 {
		return
	}

	frame, err := json.Marshal(d.Event)
	if err != nil {
		slog.Error("failed to encode change event", "table", d.Event.Table, "reason", err)
		return
	}

	for c := range set {
		select {
		case c.send <- frame:
		default:
			slog.Warn("dropping slow realtime client", "client_id", c.id, "user_id", c.userID)
			h.remove(c)
		}
	}
}

// Publish queues evt for the clients of userID. It never blocks: when the hub is
// stopped or its queue is full the event is dropped, since clients reload on the
// next event anyway.
func (h *Hub) Publish(userID string, evt ChangeEvent) {
	if evt.Timestamp.IsZero() {
		evt.Timestamp = time.Now()
	}

	select {
	case <-h.done:
	case h.deliveries <- Delivery{UserID: userID, Event: evt}:
	default:
		slog.Warn("realtime queue full, dropping event", "user_id", userID, "table", evt.Table)
	}
}

// Register adds c to the hub. It returns false when the hub has stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case <-h.done:
		return false
	case h.register <- c:
		return true
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case <-h.done:
	case h.unregister <- c:
	}
}

// Connected reports how many clients userID currently has.
func (h *Hub) Connected(userID string) int {
	reply := make(chan int, 1)
	select {
	case <-h.done:
		return 0
	case h.counts <- countRequest{userID: userID, reply: reply}:
		return <-reply
	}
}
