package middleware

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	"github.com/ferdiebergado/finderid/internal/config"
	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
)

var (
	ErrCSRFMissing  = errors.New("csrf token missing")
	ErrCSRFMismatch = errors.New("csrf token mismatch")
)

// CSRFGuard implements the double submit cookie pattern. Safe methods receive a signed token in
// a cookie and in the response header. Unsafe methods must echo the cookie value in the header.
func CSRFGuard(cfg *config.CSRF, baker security.Baker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			hasCookie := err == nil && cookie.Value != ""

			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				if !hasCookie || baker.Check(cookie) != nil {
					cookie, err = baker.Bake()
					if err != nil {
						web.RespondInternalServerError(w, fmt.Errorf("bake csrf cookie: %w", err))
						return
					}
					http.SetCookie(w, cookie)
				}
				w.Header().Set(cfg.HeaderName, cookie.Value)
				next.ServeHTTP(w, r)
				return
			}

			if !hasCookie {
				web.RespondForbidden(w, ErrCSRFMissing, message.Forbidden, nil)
				return
			}

			if err := baker.Check(cookie); err != nil {
				web.RespondForbidden(w, err, message.Forbidden, nil)
				return
			}

			sent := r.Header.Get(cfg.HeaderName)
			if subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(sent)) != 1 {
				web.RespondForbidden(w, ErrCSRFMismatch, message.Forbidden, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
