package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ferdiebergado/finderid/internal/pkg/message"
	"github.com/ferdiebergado/finderid/internal/pkg/security"
	"github.com/ferdiebergado/finderid/internal/pkg/web"
	"github.com/ferdiebergado/finderid/internal/platform/jwt"
	"github.com/ferdiebergado/finderid/internal/user"
)

var ErrNotAdmin = errors.New("user is not an admin")

// RequireToken authenticates requests carrying a bearer access token for audience.
func RequireToken(signer jwt.Signer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			slog.Debug("Verifying access token...")

			token, err := security.BearerToken(r)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			userID, err := verify(signer, token, audience)
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContextWithUser(r.Context(), userID)))
		})
	}
}

// VerifyToken authenticates e-mail links carrying a token query parameter for audience.
func VerifyToken(signer jwt.Signer, audience string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := verify(signer, r.URL.Query().Get("token"), audience)
			if err != nil {
				web.RespondUnauthorized(w, err, MsgInvalidLinkToken, nil)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.NewContextWithUser(r.Context(), userID)))
		})
	}
}

func verify(signer jwt.Signer, token, audience string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("empty token: %w", ErrInvalidToken)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !claims.HasAudience(audience) {
		return "", fmt.Errorf("audience %v: %w", claims.Audience, ErrInvalidToken)
	}

	return claims.UserID, nil
}

type AdminChecker interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

// RequireAdmin rejects users without the admin role. It must run after RequireToken.
func RequireAdmin(checker AdminChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := user.FromContext(r.Context())
			if err != nil {
				web.RespondUnauthorized(w, err, message.InvalidUser, nil)
				return
			}

			ok, err := checker.IsAdmin(r.Context(), userID)
			if err != nil {
				web.RespondInternalServerError(w, err)
				return
			}

			if !ok {
				web.RespondForbidden(w, ErrNotAdmin, MsgAdminOnly, nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
