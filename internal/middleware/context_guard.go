package middleware

import (
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

// ContextGuard answers 408 without calling next when the client has already gone or
// the request deadline has passed.
func ContextGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := r.Context().Err()
		if err == nil {
			next.ServeHTTP(w, r)
			return
		}

		slog.Debug("request abandoned before handling", "path", r.URL.Path, "reason", err)
		web.RespondRequestTimeout(w, err, message.RequestCancel, nil)
	})
}
