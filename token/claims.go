// Package token issues and validates the signed identity tokens handed
// to clients after login.
//
// Tokens are compact JWS strings signed with the deployment's Ed25519
// key pair by default. Claims carry a fresh random subject per token, a
// validity window, optional issuer/audience sets and a reduced embedded
// identity. Every validation call is independent: there is no session
// state and no caching of prior verdicts.
package token

import (
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/user"
)

// DefaultTTL is how long a freshly issued token stays valid unless the
// issuer overrides the expiry.
const DefaultTTL = 15 * time.Minute

// Issuer is the closed set of services that mint tokens.
type Issuer string

const (
	IssuerMainWebsite Issuer = "lerpz.com"
	IssuerAccount     Issuer = "account.lerpz.com"
	IssuerDashboard   Issuer = "dashboard.lerpz.com"
)

// Audience is the closed set of services a token can be presented to.
type Audience string

const (
	AudienceAPI Audience = "api.lerpz.com"
)

// TokenUser is the reduced identity embedded in a token. It carries no
// secrets and is never written back to storage.
type TokenUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Role     user.Role `json:"role"`
}

// NewTokenUser reduces a full user to its token form.
func NewTokenUser(u user.User) TokenUser {
	return TokenUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// TokenClaims is the structured payload of an identity token.
//
// Sub identifies the token instance, not the user: it is a fresh random
// UUID per issuance and is never reused. Issuer and audience sets are
// omitted from the wire form when empty.
type TokenClaims struct {
	Sub  uuid.UUID  `json:"sub"`
	Exp  int64      `json:"exp"`
	Nbf  int64      `json:"nbf"`
	Iat  int64      `json:"iat"`
	Iss  []Issuer   `json:"iss,omitempty"`
	Aud  []Audience `json:"aud,omitempty"`
	User TokenUser  `json:"user"`
}

// NewTokenClaims builds claims for a freshly issued token: fresh subject,
// iat = nbf = now, exp = now + DefaultTTL, empty issuer/audience sets.
func NewTokenClaims(u TokenUser) TokenClaims {
	now := time.Now().Unix()
	return TokenClaims{
		Sub:  uuid.New(),
		Exp:  now + int64(DefaultTTL.Seconds()),
		Nbf:  now,
		Iat:  now,
		User: u,
	}
}

// HasIssuer reports whether any of the given issuers appears in the
// claim set.
func (c *TokenClaims) HasIssuer(issuers ...Issuer) bool {
	for _, want := range issuers {
		for _, have := range c.Iss {
			if have == want {
				return true
			}
		}
	}
	return false
}

// HasAudience reports whether any of the given audiences appears in the
// claim set.
func (c *TokenClaims) HasAudience(audiences ...Audience) bool {
	for _, want := range audiences {
		for _, have := range c.Aud {
			if have == want {
				return true
			}
		}
	}
	return false
}

// The jwt.Claims interface. Registered-claim validation is disabled on
// the parser (the validator applies its own ordered checks), but the
// library still requires these accessors.

func (c *TokenClaims) GetExpirationTime() (*gojwt.NumericDate, error) {
	return gojwt.NewNumericDate(time.Unix(c.Exp, 0)), nil
}

func (c *TokenClaims) GetIssuedAt() (*gojwt.NumericDate, error) {
	return gojwt.NewNumericDate(time.Unix(c.Iat, 0)), nil
}

func (c *TokenClaims) GetNotBefore() (*gojwt.NumericDate, error) {
	return gojwt.NewNumericDate(time.Unix(c.Nbf, 0)), nil
}

func (c *TokenClaims) GetIssuer() (string, error) {
	if len(c.Iss) == 0 {
		return "", nil
	}
	return string(c.Iss[0]), nil
}

func (c *TokenClaims) GetSubject() (string, error) {
	return c.Sub.String(), nil
}

func (c *TokenClaims) GetAudience() (gojwt.ClaimStrings, error) {
	aud := make(gojwt.ClaimStrings, 0, len(c.Aud))
	for _, a := range c.Aud {
		aud = append(aud, string(a))
	}
	return aud, nil
}
