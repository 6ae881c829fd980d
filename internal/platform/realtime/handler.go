package realtime

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/gorilla/websocket"
)

var ErrHubStopped = errors.New("realtime hub stopped")

type Handler struct {
	hub      *Hub
	signer   jwt.Signer
	audience string
	upgrader websocket.Upgrader
	opts     ClientOptions
}

// NewHandler accepts only tokens issued for audience.
func NewHandler(hub *Hub, signer jwt.Signer, audience string, cfg *config.Realtime, allowedOrigin string) *Handler {
	return &Handler{
		hub:      hub,
		signer:   signer,
		audience: audience,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || web.OriginAllowed(allowedOrigin, origin)
			},
		},
		opts: ClientOptions{
			WriteWait:      cfg.WriteWait.Duration,
			PongWait:       cfg.PongWait.Duration,
			PingPeriod:     cfg.PingPeriod.Duration,
			SendBuffer:     cfg.SendBuffer,
			MaxMessageSize: cfg.MaxMessageSize,
		},
	}
}

// Subscribe upgrades the request to a websocket that streams the caller's change events.
// Browsers cannot set headers on websocket requests, so the access token travels in the
// token query parameter.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		web.RespondUnauthorized(w, errors.New("missing realtime token"), message.InvalidUser, nil)
		return
	}

	claims, err := h.signer.Verify(token)
	if err != nil {
		web.RespondUnauthorized(w, err, message.InvalidUser, nil)
		return
	}

	if !claims.HasAudience(h.audience) {
		web.RespondUnauthorized(w, errors.New("realtime token has wrong audience"), message.InvalidUser, nil)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "reason", err)
		return
	}

	client := NewClient(claims.UserID, h.opts.SendBuffer)
	if !h.hub.Register(client) {
		slog.Warn("rejecting realtime client", "reason", ErrHubStopped)
		conn.Close()
		return
	}

	go client.writePump(conn, h.opts)
	go client.readPump(h.hub, conn, h.opts)
}
