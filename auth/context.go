package auth

import "context"

type contextKey int

const userKey contextKey = 0

// WithUser marks ctx as authenticated for the given user id.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// UserID returns the authenticated user id attached to ctx, if any.
func UserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userKey).(string)
	return userID, ok && userID != ""
}
