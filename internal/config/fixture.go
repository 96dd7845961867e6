package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// Fixture is a recorded challenge that can be answered offline. SmallA and Timestamp
// pin the two non-deterministic inputs so the response is reproducible.
type Fixture struct {
	UserPoolID      string                       `yaml:"user_pool_id"`
	Username        string                       `yaml:"username"`
	Password        string                       `yaml:"password,omitempty"`
	SmallA          string                       `yaml:"small_a,omitempty"`   // hex
	Timestamp       string                       `yaml:"timestamp,omitempty"` // RFC 3339
	TimestampFormat string                       `yaml:"timestamp_format,omitempty"`
	Challenge       protocol.ChallengeParameters `yaml:"challenge"`
}

// LoadFixture reads and checks a fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is chosen by the operator
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, protocol.NewConfigurationError(fmt.Sprintf("failed to parse fixture %s: %v", path, err))
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that the fixture names a pool and carries a full challenge.
func (f *Fixture) Validate() error {
	if _, err := protocol.PoolName(f.UserPoolID); err != nil {
		return err
	}

	missing := func(field string) error {
		return protocol.NewConfigurationError(fmt.Sprintf("fixture is missing %s", field))
	}
	switch {
	case f.Challenge.SRPB == "":
		return missing("challenge.SRP_B")
	case f.Challenge.Salt == "":
		return missing("challenge.SALT")
	case f.Challenge.SecretBlock == "":
		return missing("challenge.SECRET_BLOCK")
	case f.Challenge.UserIDForSRP == "":
		return missing("challenge.USER_ID_FOR_SRP")
	}

	if _, err := f.Time(); err != nil {
		return err
	}
	return nil
}

// Time returns the pinned timestamp, or the zero time when none is set.
func (f *Fixture) Time() (time.Time, error) {
	if f.Timestamp == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, f.Timestamp)
	if err != nil {
		return time.Time{}, protocol.NewConfigurationError(fmt.Sprintf("invalid fixture timestamp %q: %v", f.Timestamp, err))
	}
	return t, nil
}

func marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return data, nil
}
