package context

import (
	"context"
)

// UserContext holds the authenticated caller's identity.
type UserContext struct {
	UserID   string
	Username string
	Role     string
}

type userKey struct{}

// WithUser stores the authenticated user in context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// GetUser returns the authenticated user from context, or nil.
func GetUser(ctx context.Context) *UserContext {
	if u, ok := ctx.Value(userKey{}).(*UserContext); ok {
		return u
	}
	return nil
}
