// Package config loads the settings shared by the SRP tooling: which user pool and app
// client to authenticate against, how the response timestamp is rendered and how to log.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

const (
	// EnvPrefix prefixes every environment override, e.g. COGNITO_SRP_USER_POOL_ID.
	EnvPrefix = "COGNITO_SRP_"
)

// Config holds the settings for an authentication attempt.
type Config struct {
	UserPoolID      string          `yaml:"user_pool_id"     env:"USER_POOL_ID"`
	ClientID        string          `yaml:"client_id"        env:"CLIENT_ID"`
	TimestampFormat string          `yaml:"timestamp_format" env:"TIMESTAMP_FORMAT"`
	Logging         LoggingSettings `yaml:"logging"          envPrefix:"LOGGING_"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level"  env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		TimestampFormat: "standard",
		Logging: LoggingSettings{
			Level:  "info",
			Format: "json",
		},
	}
}

// Loader layers configuration sources. Precedence, highest first:
// environment, config file, defaults. Flags are applied by commands afterwards.
type Loader struct {
	// Path is the config file. Empty means <UserConfigDir>/cognito-srp/config.yaml,
	// which may be absent.
	Path string

	// Environment replaces the process environment when set.
	Environment map[string]string
}

// Load reads configuration with the process environment and the default file location.
func Load(path string) (*Config, error) {
	return Loader{Path: path}.Load()
}

// Load builds the layered configuration and validates it.
func (l Loader) Load() (*Config, error) {
	cfg := Default()

	path, explicit := l.Path, l.Path != ""
	if !explicit {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadFromFile(path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.loadFromEnv(l.Environment); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path) // #nosec G304 - path is chosen by the operator
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return protocol.NewConfigurationError(fmt.Sprintf("failed to parse config file %s: %v", path, err))
	}
	return nil
}

func (c *Config) loadFromEnv(environment map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environment != nil {
		opts.Environment = environment
	}
	if err := env.ParseWithOptions(c, opts); err != nil {
		return protocol.NewConfigurationError(fmt.Sprintf("failed to parse environment: %v", err))
	}
	return nil
}

// ApplyFlags overrides values with non-empty command-line flags.
func (c *Config) ApplyFlags(userPoolID, clientID, timestampFormat string) {
	if userPoolID != "" {
		c.UserPoolID = userPoolID
	}
	if clientID != "" {
		c.ClientID = clientID
	}
	if timestampFormat != "" {
		c.TimestampFormat = timestampFormat
	}
}

// PoolName returns the pool identifier mixed into the password hash.
func (c *Config) PoolName() (string, error) {
	return protocol.PoolName(c.UserPoolID)
}
