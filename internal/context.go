package internal

import (
	"context"
	"time"
)

type callerKey struct{}

// Caller is the authenticated principal attached to a request context.
type Caller struct {
	UserID string
	Role   string
}

func callerFrom(ctx context.Context) Caller {
	if ctx == nil {
		return Caller{}
	}
	c, _ := ctx.Value(callerKey{}).(Caller)
	return c
}

// UserIDFromContext is empty for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	return callerFrom(ctx).UserID
}

func RoleFromContext(ctx context.Context) string {
	return callerFrom(ctx).Role
}

// ContextWithUserID keeps any role already on ctx.
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	c := callerFrom(ctx)
	c.UserID = userID
	return context.WithValue(ctx, callerKey{}, c)
}

func ContextWithUser(ctx context.Context, userID, role string) context.Context {
	return context.WithValue(ctx, callerKey{}, Caller{UserID: userID, Role: role})
}

// WithTimeout falls back to 5s when d is not positive.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = 5 * time.Second
	}
	return context.WithTimeout(ctx, d)
}
