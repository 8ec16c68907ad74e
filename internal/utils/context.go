package utils

import "context"

type contextKey string

const (
	UserIDKey       contextKey = "user_id"
	UserEmailKey    contextKey = "email"
	UserUsernameKey contextKey = "username"
)

// SetUserContext sets the authenticated caller into context (called by middleware).
func SetUserContext(ctx context.Context, id uint, email, username string) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, id)
	ctx = context.WithValue(ctx, UserEmailKey, email)
	ctx = context.WithValue(ctx, UserUsernameKey, username)
	return ctx
}

// GetUserIDFromContext retrieves userID safely
func GetUserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(UserIDKey).(uint)
	return id, ok
}

func GetUserEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(UserEmailKey).(string)
	return email
}

func GetUsernameFromContext(ctx context.Context) string {
	username, _ := ctx.Value(UserUsernameKey).(string)
	return username
}
