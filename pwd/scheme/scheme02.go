package scheme

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// scheme02 is a registered bcrypt scheme kept for credentials hashed
// before the argon2id rotation. It is never used for new credentials.
//
// Salt policy: scheme-internal; bcrypt embeds its own random salt in the
// encoded hash and the caller-supplied salt is ignored. No pepper is
// applied, matching how these credentials were originally produced.
type scheme02 struct {
	cost int
}

func newScheme02() *scheme02 {
	return &scheme02{cost: 12}
}

func (s *scheme02) Hash(pwd, _ string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), s.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHash, err)
	}
	return string(hash), nil
}

func (s *scheme02) Verify(encoded, candidate string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(encoded), []byte(candidate))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrEncodedHash, err)
	}
}
