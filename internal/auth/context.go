package auth

import "context"

type contextKey string

const userIDKey contextKey = "user_id"

// DefaultOwnerUserID используется пока авторизация выключена (MVP)
const DefaultOwnerUserID = "default"

// WithUserID puts the authenticated user id into the context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFrom returns the authenticated user id, or the default owner when
// the request was not authenticated.
func UserIDFrom(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok && id != "" {
		return id
	}
	return DefaultOwnerUserID
}
