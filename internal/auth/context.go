package auth

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

type userIDKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id, if the request carried a valid token.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// RequireUser is used by protected operations.
func RequireUser(ctx context.Context) (string, error) {
	userID, ok := UserIDFromContext(ctx)
	if !ok {
		return "", huma.NewError(http.StatusUnauthorized, "Authentication required")
	}
	return userID, nil
}
