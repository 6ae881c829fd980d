package middleware

import (
	"bufio"
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
)

// InjectWriter swaps in a SafeResponseWriter so later middlewares can read back the
// status and size of the response. LogRequest relies on it.
func InjectWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(NewSafeResponseWriter(r.Context(), w), r)
	})
}

// SafeResponseWriter sends the status line at most once, drops output once the request
// context is done, and counts what it wrote.
//
//nolint:containedctx // checked on every write
type SafeResponseWriter struct {
	http.ResponseWriter
	ctx context.Context

	mu     sync.Mutex
	status int
	size   int
}

func NewSafeResponseWriter(ctx context.Context, w http.ResponseWriter) *SafeResponseWriter {
	return &SafeResponseWriter{ResponseWriter: w, ctx: ctx}
}

func (w *SafeResponseWriter) WriteHeader(code int) {
	if err := w.ctx.Err(); err != nil {
		slog.Warn("header dropped", "status", code, "reason", err)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.sendHeader(code)
}

// sendHeader must be called with mu held.
func (w *SafeResponseWriter) sendHeader(code int) {
	if w.status != 0 {
		return
	}
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *SafeResponseWriter) Write(b []byte) (int, error) {
	if err := w.ctx.Err(); err != nil {
		slog.Warn("body dropped", "bytes", len(b), "reason", err)
		return 0, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.sendHeader(http.StatusOK)
	n, err := w.ResponseWriter.Write(b)
	w.size += n
	return n, err
}

// Hijack hands the connection to a websocket upgrader.
func (w *SafeResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	conn, rw, err := http.NewResponseController(w.ResponseWriter).Hijack()
	if err != nil {
		return nil, nil, err
	}

	w.mu.Lock()
	w.status = http.StatusSwitchingProtocols
	w.mu.Unlock()

	return conn, rw, nil
}

func (w *SafeResponseWriter) Flush() {
	_ = http.NewResponseController(w.ResponseWriter).Flush()
}

func (w *SafeResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// Status is the code sent to the client, or 200 when nothing was sent yet.
func (w *SafeResponseWriter) Status() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *SafeResponseWriter) BytesWritten() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}
