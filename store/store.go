// Package store defines the persistence boundary for user identities.
// The authentication core only needs two operations; real deployments
// implement UserStore over their database, and MemoryStore covers
// development and tests.
package store

import (
	"context"
	"errors"

	"github.com/lerpz-com/lerpz-auth/user"
)

// Store errors.
var (
	// ErrNotFound means no user matches the lookup.
	ErrNotFound = errors.New("store: user not found")
	// ErrDuplicate means the username or email is already taken.
	ErrDuplicate = errors.New("store: username or email already exists")
)

// Credential is a user together with their stored credential hash in its
// encoded #<scheme>#<hash> form.
type Credential struct {
	User user.User
	Hash string
}

// UserStore persists user identities and their credential hashes.
// Identity fields are mutated only through this boundary, never by the
// authentication core.
type UserStore interface {
	// CreateUser stores a new user and their credential hash.
	// Fails with ErrDuplicate when the username or email is taken.
	CreateUser(ctx context.Context, u user.User, hash string) error

	// GetByUsername returns the user and stored hash for a username.
	// Fails with ErrNotFound when no such user exists.
	GetByUsername(ctx context.Context, username string) (Credential, error)
}
