package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ferdiebergado/finderid/internal/middleware"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/google/go-cmp/cmp"
)

type lostReport struct {
	Kind      string `json:"kind"`
	DocNumber string `json:"doc_number"`
	Copies    int    `json:"copies"`
}

func TestDecodePayload(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		body     string
		maxBytes int64
		wantCode int
		want     *lostReport
	}{
		{
			name:     "single object",
			body:     `{"kind":"lost","doc_number":"P-1234","copies":1}`,
			maxBytes: 128,
			wantCode: http.StatusOK,
			want:     &lostReport{Kind: "lost", DocNumber: "P-1234", Copies: 1},
		},
		{"body over the limit", `{"kind":"lost","doc_number":"P-1234"}`, 8, http.StatusRequestEntityTooLarge, nil},
		{"unknown field", `{"kind":"found","reward":100}`, 128, http.StatusUnprocessableEntity, nil},
		{"two objects", `{"kind":"lost"}{"kind":"found"}`, 128, http.StatusBadRequest, nil},
		{"wrong type", `{"copies":"two"}`, 128, http.StatusBadRequest, nil},
		{"truncated json", `{"kind"`, 128, http.StatusBadRequest, nil},
		{"empty body", ``, 128, http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got *lostReport
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				p, err := web.ParamsFromContext[lostReport](r.Context())
				if err != nil {
					t.Errorf("ParamsFromContext() = %v", err)
				}
				got = &p
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			middleware.DecodePayload[lostReport](tt.maxBytes)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantCode {
				t.Errorf("rec.Code = %d, want: %d", rec.Code, tt.wantCode)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("decoded payload mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
