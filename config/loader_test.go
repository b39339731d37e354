package config

import (
	"testing"
)

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PWD_PEPPER", "env-pepper")
	t.Setenv("TOKEN_PRIVATE_KEY_FILE", "/keys/ed25519.pem")
	t.Setenv("TOKEN_PUBLIC_KEY_FILE", "/keys/ed25519.pub.pem")
	t.Setenv("SERVER_ADDR", ":9999")

	cfg, err := Load(LoaderOptions{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Pwd.Pepper != "env-pepper" {
		t.Errorf("expected pepper from env, got %q", cfg.Pwd.Pepper)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("expected addr from env, got %q", cfg.Server.Addr)
	}
	if cfg.Token.PrivateKeyFile != "/keys/ed25519.pem" {
		t.Errorf("expected private key path from env, got %q", cfg.Token.PrivateKeyFile)
	}

	// Defaults fill everything not set.
	if cfg.Env != "dev" {
		t.Errorf("expected default env dev, got %q", cfg.Env)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("expected default log level info, got %q", cfg.Logging.Level)
	}
	if cfg.Pwd.PoolSize != 4 {
		t.Errorf("expected default pool size 4, got %d", cfg.Pwd.PoolSize)
	}
}

func TestLoad_MissingPepper(t *testing.T) {
	t.Setenv("PWD_PEPPER", "")
	t.Setenv("TOKEN_PRIVATE_KEY_FILE", "/keys/ed25519.pem")
	t.Setenv("TOKEN_PUBLIC_KEY_FILE", "/keys/ed25519.pub.pem")

	if _, err := Load(LoaderOptions{}); err == nil {
		t.Fatal("expected error when pepper is missing")
	}
}
