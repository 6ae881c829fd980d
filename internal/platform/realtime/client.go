package realtime

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type ClientOptions struct {
	WriteWait      time.Duration
	PongWait       time.Duration
	PingPeriod     time.Duration
	SendBuffer     int
	MaxMessageSize int64
}

// Client is one websocket connection of a user.
type Client struct {
	id     string
	userID string
	send   chan []byte
}

func NewClient(userID string, buffer int) *Client {
	return &Client{
		id:     uuid.NewString(),
		userID: userID,
		send:   make(chan []byte, buffer),
	}
}

func (c *Client) ID() string { return c.id }

// Send exposes the outbound frames; the channel is closed when the hub drops the client.
func (c *Client) Send() <-chan []byte { return c.send }

// readPump discards inbound frames and keeps the read deadline alive with pongs.
// It unregisters the client when the connection fails.
func (c *Client) readPump(hub *Hub, conn *websocket.Conn, opts ClientOptions) {
	defer func() {
		hub.Unregister(c)
		conn.Close()
	}()

	conn.SetReadLimit(opts.MaxMessageSize)
	if err := conn.SetReadDeadline(time.Now().Add(opts.PongWait)); err != nil {
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(opts.PongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("realtime connection closed unexpectedly", "client_id", c.id, "reason", err)
			}
			return
		}
	}
}

// writePump writes queued frames and periodic pings until the send channel closes.
func (c *Client) writePump(conn *websocket.Conn, opts ClientOptions) {
	ticker := time.NewTicker(opts.PingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			if err := conn.SetWriteDeadline(time.Now().Add(opts.WriteWait)); err != nil {
				return
			}
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				if !errors.Is(err, websocket.ErrCloseSent) {
					slog.Warn("realtime write failed", "client_id", c.id, "reason", err)
				}
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(opts.WriteWait)); err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
