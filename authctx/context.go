// Package authctx propagates the authenticated identity through request
// context. The auth middleware stores the identity after a token
// validates; handlers retrieve it without touching the token again.
package authctx

import (
	"context"
	"errors"

	"github.com/lerpz-com/lerpz-auth/token"
)

// contextKey is unexported to prevent collisions with other packages.
type contextKey struct{}

var userKey = contextKey{}

// ErrNoUser is returned when no authenticated identity is in context.
var ErrNoUser = errors.New("authctx: no authenticated user in context")

// Set stores the authenticated identity in the context.
func Set(ctx context.Context, u token.TokenUser) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Get retrieves the authenticated identity from the context.
func Get(ctx context.Context) (token.TokenUser, bool) {
	u, ok := ctx.Value(userKey).(token.TokenUser)
	return u, ok
}

// MustGet retrieves the authenticated identity or panics. Use only in
// handlers behind the auth middleware, which guarantees the identity is
// present.
func MustGet(ctx context.Context) token.TokenUser {
	u, ok := Get(ctx)
	if !ok {
		panic("authctx: user not found in context")
	}
	return u
}

// GetOrError retrieves the authenticated identity or ErrNoUser.
func GetOrError(ctx context.Context) (token.TokenUser, error) {
	u, ok := Get(ctx)
	if !ok {
		return token.TokenUser{}, ErrNoUser
	}
	return u, nil
}
