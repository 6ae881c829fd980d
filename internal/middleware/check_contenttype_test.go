package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/finderid/internal/middleware"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

func TestCheckContentType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method, contentType string
		wantCode            int
	}{
		{http.MethodPost, web.MimeJSON, http.StatusAccepted},
		{http.MethodPut, "application/json; charset=utf-8", http.StatusAccepted},
		{http.MethodPatch, "Application/JSON", http.StatusAccepted},
		{http.MethodPost, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{http.MethodPost, "text/html; charset=utf-8", http.StatusUnsupportedMediaType},
		{http.MethodPut, "", http.StatusUnsupportedMediaType},
		{http.MethodGet, "", http.StatusAccepted},
		{http.MethodDelete, "text/plain", http.StatusAccepted},
	}

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	})

	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/mcards", strings.NewReader(`{"full_name":"Ana Cruz"}`))
		if tt.contentType != "" {
			req.Header.Set(web.HeaderContentType, tt.contentType)
		}
		rec := httptest.NewRecorder()
		middleware.CheckContentType(next).ServeHTTP(rec, req)

		if rec.Code != tt.wantCode {
			t.Errorf("%s with %q: rec.Code = %d, want: %d", tt.method, tt.contentType, rec.Code, tt.wantCode)
		}
	}
}
