// Package pwd hashes and verifies user credentials under a versioned
// scheme registry.
//
// Stored credentials are self-describing strings of the form
// #<scheme>#<hash>, so verification always re-derives the algorithm from
// the credential itself rather than from whatever the caller believes is
// current. The memory-hard hashing work is dispatched to a bounded pool
// kept apart from request handling.
package pwd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lerpz-com/lerpz-auth/pwd/scheme"
)

// Dispatch failures, distinct from scheme computation failures. These
// are transient: the pool was full or shutting down, and the outer
// request is safe to retry.
var (
	ErrHashDispatch   = errors.New("pwd: failed dispatching hash to pool")
	ErrVerifyDispatch = errors.New("pwd: failed dispatching verify to pool")
)

// Config configures the credential manager.
type Config struct {
	// Pepper is the process-wide secret folded into every new hash.
	Pepper string `mapstructure:"pepper"`
	// PoolSize bounds concurrent hash computations (default: 4).
	PoolSize int `mapstructure:"pool_size"`
	// PoolWait is how long a request waits for a hashing slot before
	// failing. 0 fails immediately when the pool is full.
	PoolWait time.Duration `mapstructure:"pool_wait"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.PoolSize == 0 {
		c.PoolSize = 4
	}
	if c.PoolWait == 0 {
		c.PoolWait = 250 * time.Millisecond
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Pepper == "" {
		return errors.New("pwd: pepper is required")
	}
	return nil
}

// Manager orchestrates salting, hashing and verification over the
// scheme registry. It is safe for concurrent use; all state is read-only
// after construction.
type Manager struct {
	registry *scheme.Registry
	pool     *hashPool
}

// NewManager builds a credential manager from configuration.
func NewManager(cfg Config) (*Manager, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg, err := scheme.NewRegistry(scheme.Config{Pepper: cfg.Pepper})
	if err != nil {
		return nil, err
	}
	return &Manager{
		registry: reg,
		pool:     newHashPool(cfg.PoolSize, cfg.PoolWait),
	}, nil
}

// Registry exposes the scheme table, mainly for migration tooling.
func (m *Manager) Registry() *scheme.Registry { return m.registry }

// Hash hashes a plaintext credential under the latest scheme and returns
// the encoded #<scheme>#<hash> string.
func (m *Manager) Hash(ctx context.Context, pwd, salt string) (string, error) {
	return m.HashParts(ctx, NewPwdParts(pwd, salt))
}

// HashParts hashes a credential from explicit parts. Combined with
// NewPwdPartsWithScheme this can produce a credential under an old
// scheme, which is why regular callers should go through Hash.
func (m *Manager) HashParts(ctx context.Context, parts PwdParts) (string, error) {
	sch, err := m.registry.Get(parts.Scheme)
	if err != nil {
		return "", err
	}

	encoded, _, err := m.pool.run(ctx, func() (string, bool, error) {
		h, err := sch.Hash(parts.Pwd, parts.Salt)
		return h, err == nil, err
	})
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			return "", fmt.Errorf("%w: %v", ErrHashDispatch, err)
		}
		return "", err
	}

	return HashParts{Scheme: parts.Scheme, Hash: encoded}.String(), nil
}

// Verify checks a candidate plaintext against a stored credential.
//
// A wrong password is (false, nil); an error always means an operational
// fault (malformed credential, unknown scheme, dispatch failure, scheme
// computation failure). Callers must map false and not-found to the same
// outward response so error shape never reveals which one occurred.
func (m *Manager) Verify(ctx context.Context, stored, candidate string) (bool, error) {
	parts, err := ParseHashParts(stored)
	if err != nil {
		return false, err
	}

	// Always the stored identifier, never the latest.
	sch, err := m.registry.Get(parts.Scheme)
	if err != nil {
		return false, err
	}

	_, ok, err := m.pool.run(ctx, func() (string, bool, error) {
		ok, err := sch.Verify(parts.Hash, candidate)
		return "", ok, err
	})
	if err != nil {
		if errors.Is(err, ErrPoolExhausted) {
			return false, fmt.Errorf("%w: %v", ErrVerifyDispatch, err)
		}
		return false, err
	}
	return ok, nil
}
