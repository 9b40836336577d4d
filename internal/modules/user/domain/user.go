package domain

import (
	"context"
	"time"
)

// User is an anonymous visitor identified by a cookie
type User struct {
	ID        string    `db:"id" json:"id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	LastSeen  time.Time `db:"last_seen" json:"last_seen"`
}

type contextKey struct{}

// WithUser stores the user in ctx.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// FromContext returns the user stored in ctx, or nil.
func FromContext(ctx context.Context) *User {
	user, _ := ctx.Value(contextKey{}).(*User)
	return user
}
