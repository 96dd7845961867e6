package config

import (
	"fmt"

	"github.com/fzdarsky/cognito-srp/internal/logging"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
)

// Validate checks the values that can be checked without the identity provider. The
// user pool id is optional here because offline commands do not need it; use
// RequireUserPool before talking to a pool.
func (c *Config) Validate() error {
	if c.UserPoolID != "" {
		if _, err := c.PoolName(); err != nil {
			return err
		}
	}

	if _, err := srp.ParseTimestampFormat(c.TimestampFormat); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}
	if _, err := logging.ParseFormat(c.Logging.Format); err != nil {
		return fmt.Errorf("logging validation failed: %w", err)
	}

	return nil
}

// RequireUserPool checks that the pool and app client are set.
func (c *Config) RequireUserPool() error {
	if c.UserPoolID == "" {
		return protocol.NewConfigurationError(fmt.Sprintf(
			"user pool id not specified: use --user-pool-id, %sUSER_POOL_ID or 'user_pool_id:' in the config file", EnvPrefix))
	}
	if c.ClientID == "" {
		return protocol.NewConfigurationError(fmt.Sprintf(
			"app client id not specified: use --client-id, %sCLIENT_ID or 'client_id:' in the config file", EnvPrefix))
	}
	return nil
}

// Logger builds the logger described by the logging settings.
func (c *Config) Logger() (*logging.Logger, error) {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(c.Logging.Format)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// Timestamp returns the parsed timestamp rendering.
func (c *Config) Timestamp() (srp.TimestampFormat, error) {
	return srp.ParseTimestampFormat(c.TimestampFormat)
}
