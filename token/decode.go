package token

import (
	"errors"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// AuthTokenValidator decodes and verifies a token string against a
// validation policy. Like the issuer builder it has value semantics:
// each With* returns an updated copy and the policy is immutable once
// DecodeAndVerify runs.
//
// The default policy accepts only EdDSA, leaves not-before unchecked and
// requires no issuer or audience.
type AuthTokenValidator struct {
	token          string
	algorithms     []string
	checkNotBefore bool
	requiredIss    []Issuer
	requiredAud    []Audience
}

// NewValidator starts a validator for the given token string.
func NewValidator(token string) AuthTokenValidator {
	return AuthTokenValidator{
		token:      token,
		algorithms: []string{gojwt.SigningMethodEdDSA.Alg()},
	}
}

// WithAlgorithm replaces the allowed set with a single algorithm.
func (v AuthTokenValidator) WithAlgorithm(method gojwt.SigningMethod) AuthTokenValidator {
	v.algorithms = []string{method.Alg()}
	return v
}

// WithAlgorithms replaces the allowed algorithm set.
func (v AuthTokenValidator) WithAlgorithms(methods ...gojwt.SigningMethod) AuthTokenValidator {
	algs := make([]string, 0, len(methods))
	for _, m := range methods {
		algs = append(algs, m.Alg())
	}
	v.algorithms = algs
	return v
}

// WithNotBeforeCheck enables enforcement of the nbf claim.
func (v AuthTokenValidator) WithNotBeforeCheck() AuthTokenValidator {
	v.checkNotBefore = true
	return v
}

// WithRequiredIssuers requires the token's issuer set to intersect the
// given set.
func (v AuthTokenValidator) WithRequiredIssuers(iss ...Issuer) AuthTokenValidator {
	v.requiredIss = append(append([]Issuer(nil), v.requiredIss...), iss...)
	return v
}

// WithRequiredAudiences requires the token's audience set to intersect
// the given set.
func (v AuthTokenValidator) WithRequiredAudiences(aud ...Audience) AuthTokenValidator {
	v.requiredAud = append(append([]Audience(nil), v.requiredAud...), aud...)
	return v
}

// DecodeAndVerify parses the token, verifies its signature with the
// given key and applies the policy checks in order: structure, then
// signature, then algorithm, then expiry, then not-before, then issuer,
// then audience. Exactly one failure kind is surfaced per call.
//
// Registered-claim validation in the underlying library is disabled so
// the ordering here is authoritative; a token that is both expired and
// badly signed always reports ErrSignatureInvalid.
func (v AuthTokenValidator) DecodeAndVerify(key any) (*TokenClaims, error) {
	claims := new(TokenClaims)
	parser := gojwt.NewParser(gojwt.WithoutClaimsValidation())

	parsed, err := parser.ParseWithClaims(v.token, claims, func(*gojwt.Token) (any, error) {
		return key, nil
	})
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenMalformed) {
			return nil, ErrMalformedToken
		}
		// Everything else at this stage is a verification failure:
		// a mismatched signature, or a key that cannot verify the
		// token's algorithm at all.
		return nil, ErrSignatureInvalid
	}

	if !v.algorithmAllowed(parsed.Method.Alg()) {
		return nil, ErrAlgorithmNotAllowed
	}

	now := time.Now().Unix()
	if now > claims.Exp {
		return nil, ErrTokenExpired
	}
	if v.checkNotBefore && now < claims.Nbf {
		return nil, ErrTokenNotYetValid
	}
	if len(v.requiredIss) > 0 && !claims.HasIssuer(v.requiredIss...) {
		return nil, ErrIssuerRejected
	}
	if len(v.requiredAud) > 0 && !claims.HasAudience(v.requiredAud...) {
		return nil, ErrAudienceRejected
	}

	return claims, nil
}

func (v AuthTokenValidator) algorithmAllowed(alg string) bool {
	for _, allowed := range v.algorithms {
		if allowed == alg {
			return true
		}
	}
	return false
}
