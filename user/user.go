// Package user defines the identity model shared by the credential and
// token layers. Persistence of users lives behind the store package; this
// package never mutates an identity after construction.
package user

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold. Adding a role means
// adding a constant here and handling it wherever roles are switched on,
// never parsing free-form strings.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleModerator, RoleUser:
		return true
	}
	return false
}

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("user: unknown role %q", s)
	}
	return r, nil
}

// User is a registered identity. ID, Username and Email are unique; the
// credential hash is stored separately and never travels with this struct.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates a user with a fresh ID and the default role.
func New(username, email string) User {
	now := time.Now().UTC()
	return User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Role:      RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
