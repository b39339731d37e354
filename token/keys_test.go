package token_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/lerpz-com/lerpz-auth/token"
)

func pemKeyPair(t *testing.T) (privPEM, pubPEM []byte) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		t.Fatalf("marshal private key: %v", err)
	}
	pubDER, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		t.Fatalf("marshal public key: %v", err)
	}

	privPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})
	return privPEM, pubPEM
}

func TestParseEdKeys_RoundTrip(t *testing.T) {
	privPEM, pubPEM := pemKeyPair(t)

	keys, err := token.ParseEdKeys(privPEM, pubPEM)
	if err != nil {
		t.Fatalf("ParseEdKeys failed: %v", err)
	}

	signed, err := token.New(testUser()).Sign(keys.Signing)
	if err != nil {
		t.Fatalf("Sign failed: %v", err)
	}
	if _, err := token.NewValidator(signed).DecodeAndVerify(keys.Verifying); err != nil {
		t.Fatalf("DecodeAndVerify failed: %v", err)
	}
}

func TestParseEdKeys_RejectsGarbage(t *testing.T) {
	_, pubPEM := pemKeyPair(t)

	if _, err := token.ParseEdKeys([]byte("not pem"), pubPEM); err == nil {
		t.Fatal("expected error for invalid private key PEM")
	}
	if _, err := token.ParseEdKeys(pubPEM, pubPEM); err == nil {
		t.Fatal("expected error for a public key in the private slot")
	}
}

func TestLoadEdKeys_FromFiles(t *testing.T) {
	privPEM, pubPEM := pemKeyPair(t)

	dir := t.TempDir()
	privPath := filepath.Join(dir, "ed25519.pem")
	pubPath := filepath.Join(dir, "ed25519.pub.pem")
	if err := os.WriteFile(privPath, privPEM, 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pubPath, pubPEM, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := token.LoadEdKeys(privPath, pubPath); err != nil {
		t.Fatalf("LoadEdKeys failed: %v", err)
	}
	if _, err := token.LoadEdKeys(filepath.Join(dir, "missing.pem"), pubPath); err == nil {
		t.Fatal("expected error for missing private key file")
	}
}
