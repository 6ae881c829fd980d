package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderAllowCreds   = "Access-Control-Allow-Credentials"
	HeaderMaxAge       = "Access-Control-Max-Age"
	HeaderVary         = "Vary"

	AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	AllowedHeaders = "Content-Type, Authorization, X-CSRF-Token, X-Request-ID"

	preflightMaxAge = 10 * time.Minute
)

// CORS answers for the web apps listed in allowedOrigins (comma-separated). Matching
// origins get credentialed CORS headers echoing their own origin. Preflights end here with 204.
func CORS(allowedOrigins string) func(http.Handler) http.Handler {
	maxAge := strconv.Itoa(int(preflightMaxAge / time.Second))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Add(HeaderVary, "Origin")

			origin := r.Header.Get("Origin")
			allowed := web.OriginAllowed(allowedOrigins, origin)
			if allowed {
				h.Set(HeaderAllowOrigin, origin)
				h.Set(HeaderAllowCreds, "true")
			}

			if r.Method != http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			if allowed {
				h.Set(HeaderAllowMethods, AllowedMethods)
				h.Set(HeaderAllowHeaders, AllowedHeaders)
				h.Set(HeaderMaxAge, maxAge)
			}
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
