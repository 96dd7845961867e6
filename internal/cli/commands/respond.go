package commands

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/fzdarsky/cognito-srp/internal/cli/output"
	"github.com/fzdarsky/cognito-srp/internal/config"
	"github.com/fzdarsky/cognito-srp/pkg/entropy"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
)

// maxSmallABytes is the size of the random draw a fixture's small_a stands in for.
const maxSmallABytes = 128

const respondUsage = `Usage: srpcalc respond --fixture FILE [flags]

Answer a recorded PASSWORD_VERIFIER challenge offline and print the
challenge response. The fixture may pin small_a and the timestamp so
the output is reproducible.

The timestamp format comes from --timestamp-format, then the fixture,
then the config (timestamp_format or COGNITO_SRP_TIMESTAMP_FORMAT).

Prefer the password prompt: a --password value is visible in the
process list.

Flags:
`

// RespondCommand implements 'srpcalc respond'.
type RespondCommand struct {
	io     IO
	prompt PasswordPrompt
}

// NewRespondCommand creates a respond command bound to stdio.
func NewRespondCommand(stdio IO) *RespondCommand {
	return &RespondCommand{io: stdio, prompt: promptPassword}
}

// WithPrompt replaces the interactive password prompt.
func (c *RespondCommand) WithPrompt(p PasswordPrompt) *RespondCommand {
	c.prompt = p
	return c
}

// Execute runs the command and exits on failure.
func (c *RespondCommand) Execute(args []string) {
	execute(c, c.io, args)
}

// Run answers the fixture's challenge.
func (c *RespondCommand) Run(args []string) error {
	fs := newFlagSet("respond", c.io, respondUsage)
	fixturePath := fs.String("fixture", "", "Path to the challenge fixture (YAML)")
	password := fs.String("password", "", "Password, visible in the process list (prompts if neither flag nor fixture sets it)")
	timestampFormat := fs.String("timestamp-format", "", "Timestamp rendering (standard or legacy)")
	outputFormat := fs.String("output", "json", "Output format (json or yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fixturePath == "" {
		return errors.New("--fixture is required")
	}

	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		return err
	}

	cfg, logger, err := loadSettings(c.io)
	if err != nil {
		return err
	}

	fixture, err := config.LoadFixture(*fixturePath)
	if err != nil {
		return err
	}

	opts, err := fixtureOptions(fixture, *timestampFormat, cfg.TimestampFormat)
	if err != nil {
		return err
	}

	pass := *password
	if pass == "" {
		pass = fixture.Password
	}
	if pass == "" {
		if pass, err = c.prompt(c.io); err != nil {
			return err
		}
	}

	pool, err := protocol.PoolName(fixture.UserPoolID)
	if err != nil {
		return err
	}

	logger.Debug("answering fixture challenge", map[string]any{
		"pool":            pool,
		"user_id_for_srp": fixture.Challenge.UserIDForSRP,
		"pinned_a":        fixture.SmallA != "",
		"pinned_time":     fixture.Timestamp != "",
	})

	client, err := srp.NewClient(pool, opts...)
	if err != nil {
		return err
	}
	defer client.Close()

	resp, err := client.RespondToChallenge(fixture.Challenge, pass)
	if err != nil {
		logger.Warn("challenge rejected", map[string]any{"state": client.State().String()})
		return err
	}

	return output.Write(c.io.Out, resp, format)
}

// fixtureOptions pins the random draw and clock as the fixture asks. The timestamp
// format is the override, else the fixture's, else the configured one.
func fixtureOptions(f *config.Fixture, formatOverride, configured string) ([]srp.Option, error) {
	name := configured
	switch {
	case formatOverride != "":
		name = formatOverride
	case f.TimestampFormat != "":
		name = f.TimestampFormat
	}
	tsFormat, err := srp.ParseTimestampFormat(name)
	if err != nil {
		return nil, err
	}
	opts := []srp.Option{srp.WithTimestampFormat(tsFormat)}

	if f.SmallA != "" {
		a, err := hex.DecodeString(f.SmallA)
		if err != nil {
			return nil, protocol.NewConfigurationError(fmt.Sprintf("small_a is not hex: %v", err))
		}
		if len(a) > maxSmallABytes {
			return nil, protocol.NewConfigurationError(fmt.Sprintf("small_a exceeds %d bytes", maxSmallABytes))
		}
		raw := make([]byte, maxSmallABytes)
		copy(raw[maxSmallABytes-len(a):], a)
		clear(a)
		opts = append(opts, srp.WithRandomProvider(entropy.NewSource(bytes.NewReader(raw))))
	}

	ts, err := f.Time()
	if err != nil {
		return nil, err
	}
	if !ts.IsZero() {
		opts = append(opts, srp.WithClock(func() time.Time { return ts }))
	}
	return opts, nil
}
