package token

import "errors"

// Validation failure kinds, surfaced one per DecodeAndVerify call in a
// fixed priority: malformed, then signature, then algorithm policy, then
// expiry, then not-before, then issuer, then audience.
var (
	// ErrMalformedToken means the string is not a structurally valid
	// token.
	ErrMalformedToken = errors.New("token: malformed token")
	// ErrSignatureInvalid means the signature does not verify under the
	// supplied key.
	ErrSignatureInvalid = errors.New("token: signature invalid")
	// ErrAlgorithmNotAllowed means the token's signing algorithm is not
	// in the validator's allowed set.
	ErrAlgorithmNotAllowed = errors.New("token: algorithm not allowed")
	// ErrTokenExpired means the expiry has passed.
	ErrTokenExpired = errors.New("token: token expired")
	// ErrTokenNotYetValid means the not-before timestamp lies in the
	// future. Only reported when not-before checking is enabled.
	ErrTokenNotYetValid = errors.New("token: token not yet valid")
	// ErrIssuerRejected means the token's issuer set is disjoint from
	// the validator's required set.
	ErrIssuerRejected = errors.New("token: issuer rejected")
	// ErrAudienceRejected means the token's audience set is disjoint
	// from the validator's required set.
	ErrAudienceRejected = errors.New("token: audience rejected")
)

// ErrSigningFailed means the signing key is incompatible with the chosen
// algorithm or the signing primitive itself errored.
var ErrSigningFailed = errors.New("token: signing failed")
