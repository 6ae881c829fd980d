package user

import (
	"context"
	"errors"
)

var ErrNoUserInContext = errors.New("no user in context")

type userIDKey struct{}

// NewContextWithUser records the id of the user a request was authenticated as.
func NewContextWithUser(parent context.Context, userID string) context.Context {
	return context.WithValue(parent, userIDKey{}, userID)
}

// FromContext returns the id stored by NewContextWithUser. Handlers behind
// RequireToken can rely on it being set.
func FromContext(ctx context.Context) (string, error) {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id, nil
	}
	return "", ErrNoUserInContext
}
