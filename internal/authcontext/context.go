package authcontext

import (
	"context"
	"strings"
)

// UserContextKey is the request context key for the authenticated caller.
type UserContextKey struct{}

// WithUserID stores the verified caller identity in the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserContextKey{}, userID)
}

// UserIDFromContext returns the caller identity from context, if resolved.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}

	value := ctx.Value(UserContextKey{})
	if typed, ok := value.(string); ok {
		trimmed := strings.TrimSpace(typed)
		if trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}
