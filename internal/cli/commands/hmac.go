package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/fzdarsky/cognito-srp/pkg/digest"
)

const hmacUsage = `Usage: srpcalc hmac (--key K | --key-hex HEX) [flags] < input

Compute HMAC-SHA256 of standard input with the built-in engine.

Flag values are visible in the process list; avoid passing production
keys on the command line.

Flags:
`

// HMACCommand implements 'srpcalc hmac'.
type HMACCommand struct {
	io IO
}

// NewHMACCommand creates an hmac command bound to stdio.
func NewHMACCommand(stdio IO) *HMACCommand {
	return &HMACCommand{io: stdio}
}

// Execute runs the command and exits on failure.
func (c *HMACCommand) Execute(args []string) {
	execute(c, c.io, args)
}

// Run authenticates stdin and prints the encoded MAC.
func (c *HMACCommand) Run(args []string) error {
	fs := newFlagSet("hmac", c.io, hmacUsage)
	keyText := fs.String("key", "", "Key as text (visible in the process list)")
	keyHex := fs.String("key-hex", "", "Key as hex (visible in the process list)")
	encoding := fs.String("encoding", "hex", "Output encoding (hex, base64 or raw)")
	algorithm := fs.String("algorithm", string(digest.SHA256Algorithm), "Hash algorithm")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var key []byte
	switch {
	case *keyText != "" && *keyHex != "":
		return errors.New("--key and --key-hex are mutually exclusive")
	case *keyText != "":
		key = []byte(*keyText)
	case *keyHex != "":
		var err error
		if key, err = hex.DecodeString(*keyHex); err != nil {
			return fmt.Errorf("invalid --key-hex: %w", err)
		}
	default:
		return errors.New("a key is required: use --key or --key-hex")
	}
	defer clear(key)

	_, logger, err := loadSettings(c.io)
	if err != nil {
		return err
	}

	enc, err := digest.ParseEncoding(*encoding)
	if err != nil {
		return err
	}
	mac, err := digest.NewProvider().NewHMAC(digest.Algorithm(*algorithm), key)
	if err != nil {
		return err
	}

	n, err := io.Copy(hmacWriter{mac}, c.io.In)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	logger.Debug("input authenticated", map[string]any{"algorithm": *algorithm, "bytes": n})
	return writeSum(c.io.Out, mac.Digest(), enc)
}
