package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/finderid/internal/middleware"
	"github.com/google/uuid"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	given := uuid.NewString()

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{"generated when absent", "", false},
		{"client id reused", given, true},
		{"garbage replaced", "<script>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var seen string
			next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = middleware.RequestIDFromContext(r.Context())
			})

			req := httptest.NewRequest(http.MethodGet, "/plans", http.NoBody)
			if tt.header != "" {
				req.Header.Set(middleware.HeaderRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			middleware.RequestID(next).ServeHTTP(rec, req)

			got := rec.Header().Get(middleware.HeaderRequestID)
			if got != seen {
				t.Errorf("response id %q != context id %q", got, seen)
			}
			if err := uuid.Validate(got); err != nil {
				t.Errorf("uuid.Validate(%q) = %v", got, err)
			}
			if (got == tt.header) != tt.reuse {
				t.Errorf("id = %q, header = %q, want reuse: %v", got, tt.header, tt.reuse)
			}
		})
	}
}

// Not parallel: swaps the default logger.
func TestLogRequest_RedactsTokenAndLevels(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	h := middleware.InjectWriter(middleware.LogRequest(next))

	req := httptest.NewRequest(http.MethodGet, "/realtime?token=secret.jwt.value", http.NoBody)
	h.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	if strings.Contains(out, "secret.jwt.value") {
		t.Errorf("log leaks token: %s", out)
	}
	if !strings.Contains(out, "REDACTED") {
		t.Errorf("log = %s, want redacted token", out)
	}
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "status_code=401") {
		t.Errorf("log = %s, want a WARN record with status 401", out)
	}
}
