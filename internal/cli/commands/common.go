// Package commands implements the srpcalc subcommands. Every command works offline:
// nothing here opens a network connection.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/fzdarsky/cognito-srp/internal/cli/clicontext"
	"github.com/fzdarsky/cognito-srp/internal/config"
	"github.com/fzdarsky/cognito-srp/internal/logging"
	"github.com/fzdarsky/cognito-srp/pkg/digest"
)

// IO is the terminal a command reads from and writes to.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process's standard streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// runner is implemented by every command.
type runner interface {
	Run(args []string) error
}

// execute runs cmd and exits the process on failure.
func execute(cmd runner, stdio IO, args []string) {
	err := cmd.Run(args)
	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		os.Exit(0)
	default:
		exitWithError(stdio.Err, "%v", err)
	}
}

// exitWithError prints an error message and exits with status 1.
func exitWithError(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, stdio IO, usage string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stdio.Err)
	fs.Usage = func() {
		fmt.Fprint(stdio.Err, usage)
		fs.PrintDefaults()
	}
	return fs
}

// loadSettings reads the layered config for the --config path and builds the logger it
// describes. The logger writes to stdio.Err; --verbose raises it to debug.
func loadSettings(stdio IO) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(clicontext.ConfigPath())
	if err != nil {
		return nil, nil, err
	}
	logger, err := cfg.Logger()
	if err != nil {
		return nil, nil, err
	}
	if clicontext.Verbose() {
		logger.SetLevel(logging.LevelDebug)
	}
	logger.SetOutput(stdio.Err)
	return cfg, logger, nil
}

// engineWriter feeds everything written to it into a hash engine.
type engineWriter struct {
	engine digest.Engine
}

func (w engineWriter) Write(p []byte) (int, error) {
	if err := w.engine.Update(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// hmacWriter feeds everything written to it into an HMAC.
type hmacWriter struct {
	mac *digest.HMAC
}

func (w hmacWriter) Write(p []byte) (int, error) {
	w.mac.Update(p)
	return len(p), nil
}

// writeSum prints sum in enc. Raw output is written without a trailing newline.
func writeSum(w io.Writer, sum []byte, enc digest.Encoding) error {
	s := digest.Encode(sum, enc)
	if enc != digest.EncodingRaw {
		s += "\n"
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
