package commands

import (
	"errors"
	"fmt"

	"github.com/fzdarsky/cognito-srp/internal/cli/clicontext"
	"github.com/fzdarsky/cognito-srp/internal/cli/output"
	"github.com/fzdarsky/cognito-srp/internal/config"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
)

const initUsage = `Usage: srpcalc [--config FILE] init --username NAME [flags]

Start a fresh SRP session and print the InitiateAuth request that opens
the USER_SRP_AUTH flow. The private value is discarded on exit.

With --save the resolved user pool and app client are written to the
config file (--config, or the default location) for later runs.

Flags:
`

// InitCommand implements 'srpcalc init'.
type InitCommand struct {
	io IO
}

// NewInitCommand creates an init command bound to stdio.
func NewInitCommand(stdio IO) *InitCommand {
	return &InitCommand{io: stdio}
}

// Execute runs the command and exits on failure.
func (c *InitCommand) Execute(args []string) {
	execute(c, c.io, args)
}

// Run prints the InitiateAuth request for a new session.
func (c *InitCommand) Run(args []string) error {
	fs := newFlagSet("init", c.io, initUsage)
	username := fs.String("username", "", "Username to authenticate")
	userPoolID := fs.String("user-pool-id", "", "User pool id, e.g. us-east-1_ABC123")
	clientID := fs.String("client-id", "", "App client id")
	outputFormat := fs.String("output", "json", "Output format (json or yaml)")
	save := fs.Bool("save", false, "Save the resolved settings to the config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" {
		return errors.New("--username is required")
	}

	format, err := output.ParseFormat(*outputFormat)
	if err != nil {
		return err
	}

	cfg, logger, err := loadSettings(c.io)
	if err != nil {
		return err
	}
	cfg.ApplyFlags(*userPoolID, *clientID, "")
	if err := cfg.RequireUserPool(); err != nil {
		return err
	}
	pool, err := cfg.PoolName()
	if err != nil {
		return err
	}

	if *save {
		if err := c.saveSettings(cfg); err != nil {
			return err
		}
	}

	client, err := srp.NewClient(pool)
	if err != nil {
		return err
	}
	defer client.Close()

	logger.Debug("session started", map[string]any{
		"pool":       pool,
		"srp_a_bits": client.LargeA().BitLen(),
	})

	return output.Write(c.io.Out, protocol.InitiateAuthRequest{
		ClientID:       cfg.ClientID,
		AuthFlow:       protocol.AuthFlowUserSRP,
		AuthParameters: client.InitiateAuthParameters(*username),
	}, format)
}

// saveSettings persists cfg to the --config path or the default location.
func (c *InitCommand) saveSettings(cfg *config.Config) error {
	path := clicontext.ConfigPath()
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return err
		}
	}
	if err := config.Save(cfg, path); err != nil {
		return err
	}
	fmt.Fprintf(c.io.Err, "Saved settings to %s\n", path)
	return nil
}
