package token

import (
	"crypto/ed25519"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Keys is the deployment's asymmetric key pair: the private key signs
// new tokens, the public key verifies presented ones. Key material is
// external configuration; this package never generates it.
type Keys struct {
	Signing   ed25519.PrivateKey
	Verifying ed25519.PublicKey
}

// ParseEdKeys parses a PEM-encoded Ed25519 key pair (PKCS#8 private key,
// PKIX public key).
func ParseEdKeys(privatePEM, publicPEM []byte) (Keys, error) {
	priv, err := parseEdPrivateKey(privatePEM)
	if err != nil {
		return Keys{}, fmt.Errorf("token: private key: %w", err)
	}
	pub, err := parseEdPublicKey(publicPEM)
	if err != nil {
		return Keys{}, fmt.Errorf("token: public key: %w", err)
	}
	return Keys{Signing: priv, Verifying: pub}, nil
}

// LoadEdKeys reads and parses a PEM-encoded Ed25519 key pair from disk.
func LoadEdKeys(privatePath, publicPath string) (Keys, error) {
	privPEM, err := os.ReadFile(privatePath)
	if err != nil {
		return Keys{}, fmt.Errorf("token: read private key: %w", err)
	}
	pubPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return Keys{}, fmt.Errorf("token: read public key: %w", err)
	}
	return ParseEdKeys(privPEM, pubPEM)
}

func parseEdPrivateKey(pemBytes []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return nil, errors.New("not an Ed25519 private key")
	}
	return key, nil
}

func parseEdPublicKey(pemBytes []byte) (ed25519.PublicKey, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	key, ok := parsed.(ed25519.PublicKey)
	if !ok {
		return nil, errors.New("not an Ed25519 public key")
	}
	return key, nil
}
