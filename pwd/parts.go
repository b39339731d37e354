package pwd

import (
	"errors"
	"regexp"

	"github.com/lerpz-com/lerpz-auth/pwd/scheme"
)

// ErrMalformedCredential means a stored credential string does not match
// the #<scheme>#<hash> grammar. Parsing fails closed: anything that is
// not exactly two delimited, non-empty segments is rejected outright.
var ErrMalformedCredential = errors.New("pwd: malformed credential string")

// hashPartsRe anchors the whole string: two digits of scheme identifier,
// then a non-empty payload. Partial matches never succeed.
var hashPartsRe = regexp.MustCompile(`^#(\d{2})#([\w\W]+)$`)

// PwdParts is everything needed to hash a new credential.
type PwdParts struct {
	Scheme string
	Salt   string
	Pwd    string
}

// NewPwdParts builds hashing input pinned to the latest scheme. This is
// the constructor every registration path should use.
func NewPwdParts(pwd, salt string) PwdParts {
	return PwdParts{Scheme: scheme.Latest, Salt: salt, Pwd: pwd}
}

// NewPwdPartsWithScheme builds hashing input for an explicitly chosen
// scheme. This exists for migration tooling that must re-create a
// credential under an old scheme; regular callers should not reach for
// it, which is why the override is a separate, loudly named constructor.
func NewPwdPartsWithScheme(pwd, salt, schemeName string) PwdParts {
	return PwdParts{Scheme: schemeName, Salt: salt, Pwd: pwd}
}

// HashParts is a decoded stored credential: the scheme that produced it
// and the scheme-specific payload.
type HashParts struct {
	Scheme string
	Hash   string
}

// String encodes the credential in its wire form, #<scheme>#<hash>.
func (h HashParts) String() string {
	return "#" + h.Scheme + "#" + h.Hash
}

// ParseHashParts decodes a stored credential string.
func ParseHashParts(s string) (HashParts, error) {
	m := hashPartsRe.FindStringSubmatch(s)
	if m == nil {
		return HashParts{}, ErrMalformedCredential
	}
	return HashParts{Scheme: m[1], Hash: m[2]}, nil
}
