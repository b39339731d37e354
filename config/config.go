// Package config loads service configuration from a YAML file and the
// environment. Secrets (the hashing pepper, key file locations) come in
// through environment variables, typically via a .env file during
// development. Configuration is loaded once at boot and read-only
// afterwards.
package config

import (
	"errors"
	"fmt"

	"github.com/lerpz-com/lerpz-auth/logger"
	"github.com/lerpz-com/lerpz-auth/pwd"
)

// Config is the complete service configuration.
type Config struct {
	// Env names the deployment environment (dev, staging, prod).
	Env string `mapstructure:"env"`

	Server  ServerConfig  `mapstructure:"server"`
	Logging logger.Config `mapstructure:"logging"`
	Pwd     pwd.Config    `mapstructure:"pwd"`
	Token   TokenConfig   `mapstructure:"token"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// TokenConfig locates the Ed25519 key pair used for token signing and
// verification. The keys themselves are external; this core never
// generates key material.
type TokenConfig struct {
	PrivateKeyFile string `mapstructure:"private_key_file"`
	PublicKeyFile  string `mapstructure:"public_key_file"`
}

// ApplyDefaults fills in zero-value fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Env == "" {
		c.Env = "dev"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	c.Logging.ApplyDefaults()
	c.Pwd.ApplyDefaults()
}

// Validate checks all sections.
func (c *Config) Validate() error {
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Pwd.Validate(); err != nil {
		return err
	}
	if c.Token.PrivateKeyFile == "" {
		return errors.New("config: token.private_key_file is required")
	}
	if c.Token.PublicKeyFile == "" {
		return fmt.Errorf("config: token.public_key_file is required")
	}
	return nil
}
