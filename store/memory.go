package store

import (
	"context"
	"strings"
	"sync"

	"github.com/lerpz-com/lerpz-auth/user"
)

// MemoryStore is an in-memory UserStore. Suitable for development,
// testing, or single-instance deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	byName  map[string]Credential
	byEmail map[string]struct{}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byName:  make(map[string]Credential),
		byEmail: make(map[string]struct{}),
	}
}

// CreateUser implements UserStore.
func (m *MemoryStore) CreateUser(_ context.Context, u user.User, hash string) error {
	name := strings.ToLower(u.Username)
	email := strings.ToLower(u.Email)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byName[name]; ok {
		return ErrDuplicate
	}
	if _, ok := m.byEmail[email]; ok {
		return ErrDuplicate
	}

	m.byName[name] = Credential{User: u, Hash: hash}
	m.byEmail[email] = struct{}{}
	return nil
}

// GetByUsername implements UserStore.
func (m *MemoryStore) GetByUsername(_ context.Context, username string) (Credential, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cred, ok := m.byName[strings.ToLower(username)]
	if !ok {
		return Credential{}, ErrNotFound
	}
	return cred, nil
}
