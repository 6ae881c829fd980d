package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ferdiebergado/finderid/internal/middleware"
)

func TestSafeResponseWriter(t *testing.T) {
	t.Parallel()

	t.Run("Header is written once", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		w := middleware.NewSafeResponseWriter(context.Background(), rec)
		w.WriteHeader(http.StatusCreated)
		w.WriteHeader(http.StatusBadRequest)
		if _, err := w.Write([]byte("hello")); err != nil {
			t.Fatal(err)
		}

		if rec.Code != http.StatusCreated {
			t.Errorf("rec.Code = %d, want: %d", rec.Code, http.StatusCreated)
		}
		if w.Status() != http.StatusCreated {
			t.Errorf("w.Status() = %d, want: %d", w.Status(), http.StatusCreated)
		}
		if w.BytesWritten() != 5 {
			t.Errorf("w.BytesWritten() = %d, want: 5", w.BytesWritten())
		}
	})

	t.Run("Writes after cancel are dropped", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		rec := httptest.NewRecorder()
		w := middleware.NewSafeResponseWriter(ctx, rec)
		n, err := w.Write([]byte("late"))
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 || rec.Body.Len() != 0 {
			t.Errorf("write after cancel wrote %d bytes", n)
		}
	})

	t.Run("Status defaults to OK", func(t *testing.T) {
		t.Parallel()

		w := middleware.NewSafeResponseWriter(context.Background(), httptest.NewRecorder())
		if w.Status() != http.StatusOK || w.BytesWritten() != 0 {
			t.Errorf("fresh writer: Status() = %d, BytesWritten() = %d", w.Status(), w.BytesWritten())
		}
	})

	t.Run("Hijack on recorder is unsupported", func(t *testing.T) {
		t.Parallel()

		w := middleware.NewSafeResponseWriter(context.Background(), httptest.NewRecorder())
		if _, _, err := w.Hijack(); err == nil {
			t.Error("w.Hijack() error = nil, want error")
		}
	})
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"Real IP header", map[string]string{"X-Real-IP": "10.0.0.1"}, "1.1.1.1:80", "10.0.0.1"},
		{"Forwarded for", map[string]string{"X-Forwarded-For": "10.0.0.2, 10.0.0.3"}, "1.1.1.1:80", "10.0.0.2"},
		{"Remote addr", nil, "1.1.1.1:80", "1.1.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}

			if got := middleware.ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want: %q", got, tt.want)
			}
		})
	}
}
