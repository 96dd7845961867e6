package commands

import (
	"fmt"
	"io"

	"github.com/fzdarsky/cognito-srp/pkg/digest"
)

const digestUsage = `Usage: srpcalc digest [flags] < input

Hash standard input with the built-in SHA-256 engine.

Flags:
`

// DigestCommand implements 'srpcalc digest'.
type DigestCommand struct {
	io IO
}

// NewDigestCommand creates a digest command bound to stdio.
func NewDigestCommand(stdio IO) *DigestCommand {
	return &DigestCommand{io: stdio}
}

// Execute runs the command and exits on failure.
func (c *DigestCommand) Execute(args []string) {
	execute(c, c.io, args)
}

// Run hashes stdin and prints the encoded digest.
func (c *DigestCommand) Run(args []string) error {
	fs := newFlagSet("digest", c.io, digestUsage)
	encoding := fs.String("encoding", "hex", "Output encoding (hex, base64 or raw)")
	algorithm := fs.String("algorithm", string(digest.SHA256Algorithm), "Hash algorithm")
	if err := fs.Parse(args); err != nil {
		return err
	}

	_, logger, err := loadSettings(c.io)
	if err != nil {
		return err
	}

	enc, err := digest.ParseEncoding(*encoding)
	if err != nil {
		return err
	}
	engine, err := digest.NewProvider().NewHash(digest.Algorithm(*algorithm))
	if err != nil {
		return err
	}

	n, err := io.Copy(engineWriter{engine}, c.io.In)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.Debug("input hashed", map[string]any{"algorithm": *algorithm, "bytes": n})
	return writeSum(c.io.Out, engine.Digest(), enc)
}
