package token

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// AuthToken builds and signs an identity token. Every With* method
// returns an updated copy, so one builder value can be branched from
// safely; the issuer/audience slices are copied before being extended.
//
//	signed, err := token.New(tokenUser).
//		WithIssuers(token.IssuerAccount).
//		WithAudiences(token.AudienceAPI).
//		Sign(keys.Signing)
type AuthToken struct {
	method gojwt.SigningMethod
	claims TokenClaims
}

// New starts a builder with fresh default claims for the given user.
// The default signing algorithm is EdDSA.
func New(u TokenUser) AuthToken {
	return AuthToken{
		method: gojwt.SigningMethodEdDSA,
		claims: NewTokenClaims(u),
	}
}

// FromClaims starts a builder from pre-built claims.
func FromClaims(claims TokenClaims) AuthToken {
	return AuthToken{
		method: gojwt.SigningMethodEdDSA,
		claims: claims,
	}
}

// WithAlgorithm overrides the signing algorithm.
func (t AuthToken) WithAlgorithm(method gojwt.SigningMethod) AuthToken {
	t.method = method
	return t
}

// WithExpiry overrides the expiry timestamp.
func (t AuthToken) WithExpiry(exp time.Time) AuthToken {
	t.claims.Exp = exp.Unix()
	return t
}

// WithNotBefore overrides the not-before timestamp.
func (t AuthToken) WithNotBefore(nbf time.Time) AuthToken {
	t.claims.Nbf = nbf.Unix()
	return t
}

// WithIssuers adds issuers to the claim set.
func (t AuthToken) WithIssuers(iss ...Issuer) AuthToken {
	t.claims.Iss = append(append([]Issuer(nil), t.claims.Iss...), iss...)
	return t
}

// WithAudiences adds audiences to the claim set.
func (t AuthToken) WithAudiences(aud ...Audience) AuthToken {
	t.claims.Aud = append(append([]Audience(nil), t.claims.Aud...), aud...)
	return t
}

// Claims returns the claims as currently built.
func (t AuthToken) Claims() TokenClaims { return t.claims }

// Sign serializes and signs the token. The result is a pure function of
// the header, claims and key; nothing global is consulted.
func (t AuthToken) Sign(key any) (string, error) {
	claims := t.claims
	tok := gojwt.NewWithClaims(t.method, &claims)
	signed, err := tok.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}
	return signed, nil
}
