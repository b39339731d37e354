package token_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lerpz-com/lerpz-auth/token"
	"github.com/lerpz-com/lerpz-auth/user"
)

func testKeys(t *testing.T) (ed25519.PrivateKey, ed25519.PublicKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return priv, pub
}

func testUser() token.TokenUser {
	return token.TokenUser{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@lerpz.com",
		Role:     user.RoleUser,
	}
}

func TestNewTokenClaims_Defaults(t *testing.T) {
	u := testUser()
	before := time.Now().Unix()
	claims := token.NewTokenClaims(u)
	after := time.Now().Unix()

	if claims.Sub == uuid.Nil {
		t.Error("expected a fresh subject")
	}
	if claims.Iat < before || claims.Iat > after {
		t.Errorf("iat %d outside [%d, %d]", claims.Iat, before, after)
	}
	if claims.Nbf != claims.Iat {
		t.Errorf("expected nbf == iat, got nbf=%d iat=%d", claims.Nbf, claims.Iat)
	}
	if got, want := claims.Exp-claims.Iat, int64(15*60); got != want {
		t.Errorf("expected 15 minute lifetime, got %d seconds", got)
	}
	if len(claims.Iss) != 0 || len(claims.Aud) != 0 {
		t.Error("expected empty issuer and audience sets")
	}
	if claims.User != u {
		t.Errorf("embedded user mismatch: got %+v", claims.User)
	}
}

func TestNewTokenClaims_FreshSubjects(t *testing.T) {
	u := testUser()
	if token.NewTokenClaims(u).Sub == token.NewTokenClaims(u).Sub {
		t.Error("two issuances must not share a subject")
	}
}

func TestAuthToken_SignAndVerify(t *testing.T) {
	priv, pub := testKeys(t)

	signed, err := token.New(testUser()).Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	claims, err := token.NewValidator(signed).DecodeAndVerify(pub)
	if err != nil {
		t.Fatalf("DecodeAndVerify failed: %v", err)
	}
	if claims.User.Username != "alice" {
		t.Errorf("expected embedded user to round-trip, got %+v", claims.User)
	}
}

func TestAuthToken_BuilderCopyOnWrite(t *testing.T) {
	base := token.New(testUser())
	branched := base.WithIssuers(token.IssuerAccount, token.IssuerDashboard)

	if len(base.Claims().Iss) != 0 {
		t.Error("WithIssuers mutated the original builder")
	}
	if len(branched.Claims().Iss) != 2 {
		t.Errorf("expected 2 issuers on branched builder, got %d", len(branched.Claims().Iss))
	}
}

func TestAuthToken_OmitsEmptySets(t *testing.T) {
	priv, _ := testKeys(t)

	signed, err := token.New(testUser()).Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	segments := strings.Split(signed, ".")
	if len(segments) != 3 {
		t.Fatalf("expected three token segments, got %d", len(segments))
	}
	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}

	var wire map[string]any
	if err := json.Unmarshal(payload, &wire); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if _, ok := wire["iss"]; ok {
		t.Error("empty issuer set must be omitted from the wire form")
	}
	if _, ok := wire["aud"]; ok {
		t.Error("empty audience set must be omitted from the wire form")
	}
	for _, key := range []string{"sub", "exp", "nbf", "iat", "user"} {
		if _, ok := wire[key]; !ok {
			t.Errorf("expected %q in wire payload", key)
		}
	}
}

func TestAuthToken_Sign_IncompatibleKey(t *testing.T) {
	if _, err := token.New(testUser()).Sign([]byte("not an ed25519 key")); !errors.Is(err, token.ErrSigningFailed) {
		t.Fatalf("expected ErrSigningFailed, got %v", err)
	}
}

func TestValidator_Malformed(t *testing.T) {
	_, pub := testKeys(t)

	for _, in := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := token.NewValidator(in).DecodeAndVerify(pub); !errors.Is(err, token.ErrMalformedToken) {
			t.Errorf("DecodeAndVerify(%q): expected ErrMalformedToken, got %v", in, err)
		}
	}
}

func TestValidator_SignatureInvalid(t *testing.T) {
	priv, _ := testKeys(t)
	_, otherPub := testKeys(t)

	signed, err := token.New(testUser()).Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := token.NewValidator(signed).DecodeAndVerify(otherPub); !errors.Is(err, token.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestValidator_SignatureBeatsExpiry(t *testing.T) {
	priv, _ := testKeys(t)
	_, otherPub := testKeys(t)

	signed, err := token.New(testUser()).
		WithExpiry(time.Now().Add(-time.Hour)).
		Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	// Expired and wrongly signed: signature failure must win.
	if _, err := token.NewValidator(signed).DecodeAndVerify(otherPub); !errors.Is(err, token.ErrSignatureInvalid) {
		t.Fatalf("expected ErrSignatureInvalid, got %v", err)
	}
}

func TestValidator_AlgorithmPolicy(t *testing.T) {
	secret := []byte("hmac-secret")

	signed, err := token.New(testUser()).
		WithAlgorithm(gojwt.SigningMethodHS256).
		Sign(secret)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	// Default policy allows only EdDSA.
	if _, err := token.NewValidator(signed).DecodeAndVerify(secret); !errors.Is(err, token.ErrAlgorithmNotAllowed) {
		t.Fatalf("expected ErrAlgorithmNotAllowed, got %v", err)
	}

	// Including the algorithm makes the same token acceptable.
	claims, err := token.NewValidator(signed).
		WithAlgorithms(gojwt.SigningMethodEdDSA, gojwt.SigningMethodHS256).
		DecodeAndVerify(secret)
	if err != nil {
		t.Fatalf("DecodeAndVerify failed: %v", err)
	}
	if claims.User.Email != "alice@lerpz.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidator_Expired(t *testing.T) {
	priv, pub := testKeys(t)

	signed, err := token.New(testUser()).
		WithExpiry(time.Now().Add(-time.Minute)).
		Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := token.NewValidator(signed).DecodeAndVerify(pub); !errors.Is(err, token.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidator_NotBefore(t *testing.T) {
	priv, pub := testKeys(t)

	signed, err := token.New(testUser()).
		WithNotBefore(time.Now().Add(time.Hour)).
		Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	// Unchecked by default.
	if _, err := token.NewValidator(signed).DecodeAndVerify(pub); err != nil {
		t.Fatalf("expected future nbf to pass without the check, got %v", err)
	}

	// Enforced when enabled.
	if _, err := token.NewValidator(signed).WithNotBeforeCheck().DecodeAndVerify(pub); !errors.Is(err, token.ErrTokenNotYetValid) {
		t.Fatalf("expected ErrTokenNotYetValid, got %v", err)
	}
}

func TestValidator_IssuerPolicy(t *testing.T) {
	priv, pub := testKeys(t)

	signed, err := token.New(testUser()).
		WithIssuers(token.IssuerAccount).
		Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}

	if _, err := token.NewValidator(signed).
		WithRequiredIssuers(token.IssuerDashboard).
		DecodeAndVerify(pub); !errors.Is(err, token.ErrIssuerRejected) {
		t.Fatalf("expected ErrIssuerRejected, got %v", err)
	}

	if _, err := token.NewValidator(signed).
		WithRequiredIssuers(token.IssuerDashboard, token.IssuerAccount).
		DecodeAndVerify(pub); err != nil {
		t.Fatalf("expected intersecting issuer set to pass, got %v", err)
	}
}

func TestValidator_AudiencePolicy(t *testing.T) {
	priv, pub := testKeys(t)

	noAud, err := token.New(testUser()).Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := token.NewValidator(noAud).
		WithRequiredAudiences(token.AudienceAPI).
		DecodeAndVerify(pub); !errors.Is(err, token.ErrAudienceRejected) {
		t.Fatalf("expected ErrAudienceRejected, got %v", err)
	}

	withAud, err := token.New(testUser()).
		WithAudiences(token.AudienceAPI).
		Sign(priv)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := token.NewValidator(withAud).
		WithRequiredAudiences(token.AudienceAPI).
		DecodeAndVerify(pub); err != nil {
		t.Fatalf("expected matching audience to pass, got %v", err)
	}
}
