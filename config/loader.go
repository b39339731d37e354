package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOptions controls where configuration is read from. Empty fields
// fall back to searching standard locations.
type LoaderOptions struct {
	// ConfigFile is an explicit path to a config.yml.
	ConfigFile string
	// EnvFile is an explicit path to a .env file.
	EnvFile string
}

// Load reads configuration for the service: a .env file if one exists,
// then an optional config.yml, then environment variables (which win).
// Environment keys are upper-snake with sections joined by underscores,
// e.g. PWD_PEPPER, TOKEN_PRIVATE_KEY_FILE, SERVER_ADDR.
func Load(opts LoaderOptions) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = findFirst(".env.local", ".env")
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindKeys(v)

	configFile := opts.ConfigFile
	if configFile == "" {
		configFile = findFirst("config.yml", "config/config.yml")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	}

	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindKeys registers every config key with viper so AutomaticEnv can
// resolve them even when no config file sets a value.
func bindKeys(v *viper.Viper) {
	for _, key := range []string{
		"env",
		"server.addr",
		"logging.level",
		"logging.format",
		"logging.output",
		"pwd.pepper",
		"pwd.pool_size",
		"pwd.pool_wait",
		"token.private_key_file",
		"token.public_key_file",
	} {
		// BindEnv only errors when no key is supplied.
		_ = v.BindEnv(key)
	}
}

func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
