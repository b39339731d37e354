package scheme

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// scheme01 is the current default: argon2id over an HMAC-SHA256 pre-hash
// keyed with the process-wide pepper.
//
// Salt policy: scheme-internal. A fresh 16-byte random salt is generated
// for every hash and the caller-supplied salt is ignored, so two hashes
// of the same password never share a caller-visible value. Verification
// reads the salt back out of the stored PHC string.
type scheme01 struct {
	pepper  []byte
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

func newScheme01(pepper []byte) *scheme01 {
	return &scheme01{
		pepper:  pepper,
		time:    1,
		memory:  64 * 1024,
		threads: 4,
		keyLen:  32,
		saltLen: 16,
	}
}

func (s *scheme01) Hash(pwd, _ string) (string, error) {
	salt := make([]byte, s.saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", ErrHash, err)
	}

	key := argon2.IDKey(s.peppered(pwd), salt, s.time, s.memory, s.threads, s.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		s.memory, s.time, s.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

func (s *scheme01) Verify(encoded, candidate string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrEncodedHash
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, fmt.Errorf("%w: params: %v", ErrEncodedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("%w: salt: %v", ErrEncodedHash, err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("%w: digest: %v", ErrEncodedHash, err)
	}

	got := argon2.IDKey(s.peppered(candidate), salt, time, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

// peppered folds the server-side pepper into the password before the
// memory-hard pass. x/crypto's argon2 has no secret parameter, so the
// pepper is applied as an HMAC-SHA256 pre-hash instead.
func (s *scheme01) peppered(pwd string) []byte {
	mac := hmac.New(sha256.New, s.pepper)
	mac.Write([]byte(pwd))
	return mac.Sum(nil)
}
