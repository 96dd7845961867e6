// Package main provides srpcalc, an offline calculator for the USER_SRP_AUTH
// password verifier flow.
//
// srpcalc hashes and authenticates data with the module's own SHA-256 and HMAC
// engines, answers recorded challenges and prints the request that opens a session.
// It never talks to an identity provider.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fzdarsky/cognito-srp/internal/cli/clicontext"
	"github.com/fzdarsky/cognito-srp/internal/cli/commands"
)

// version is set by build flags
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	args, command, err := parseGlobalFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage()
		os.Exit(1)
	}

	switch command {
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("srpcalc version %s\n", version)
		os.Exit(0)
	}

	stdio := commands.StdIO()
	switch command {
	case "digest":
		commands.NewDigestCommand(stdio).Execute(args)
	case "hmac":
		commands.NewHMACCommand(stdio).Execute(args)
	case "respond":
		commands.NewRespondCommand(stdio).Execute(args)
	case "init":
		commands.NewInitCommand(stdio).Execute(args)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command '%s'\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

// parseGlobalFlags strips the global flags, which may appear anywhere, and returns
// the remaining args and the command.
//
//	srpcalc --verbose respond --fixture f.yaml
//	srpcalc init --config ./config.yaml --username alice
func parseGlobalFlags(args []string) ([]string, string, error) {
	remainingArgs := make([]string, 0, len(args))
	var command string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--verbose" || arg == "-V":
			clicontext.SetVerbose(true)
			continue
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, "", fmt.Errorf("--config requires a path")
			}
			i++
			clicontext.SetConfigPath(args[i])
			continue
		case strings.HasPrefix(arg, "--config="):
			clicontext.SetConfigPath(strings.TrimPrefix(arg, "--config="))
			continue
		}

		// First non-flag argument is the command
		if command == "" && (!isFlag(arg) || isTopLevelFlag(arg)) {
			command = arg
			continue
		}

		remainingArgs = append(remainingArgs, arg)
	}

	return remainingArgs, command, nil
}

// isFlag returns true if the argument looks like a flag (starts with -).
func isFlag(arg string) bool {
	return len(arg) > 0 && arg[0] == '-'
}

// isTopLevelFlag reports flags that act as a command on their own.
func isTopLevelFlag(arg string) bool {
	switch arg {
	case "--help", "-h", "--version", "-v":
		return true
	}
	return false
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `srpcalc - offline calculator for the USER_SRP_AUTH password verifier flow

Usage:
  srpcalc [global flags] <command> [flags]

Available Commands:
  digest    Hash standard input with SHA-256
  hmac      Compute HMAC-SHA256 of standard input
  respond   Answer a recorded PASSWORD_VERIFIER challenge
  init      Print the InitiateAuth request for a fresh session

Global Flags:
  --help, -h        Show help information
  --version, -v     Show version information
  --verbose, -V     Log debug information to stderr
  --config FILE     Config file (default <UserConfigDir>/cognito-srp/config.yaml)

Environment:
  COGNITO_SRP_USER_POOL_ID, COGNITO_SRP_CLIENT_ID, COGNITO_SRP_TIMESTAMP_FORMAT,
  COGNITO_SRP_LOGGING_LEVEL, COGNITO_SRP_LOGGING_FORMAT override the config file.

Examples:
  # Hash a file
  srpcalc digest < message.bin

  # HMAC with a hex key, base64 output
  srpcalc hmac --key-hex 0b0b0b0b --encoding base64 < message.bin

  # Answer a recorded challenge (prompts for the password)
  srpcalc respond --fixture challenge.yaml

  # Open a session for alice
  srpcalc init --user-pool-id us-east-1_ABC123 --client-id 4abc --username alice

For detailed help on a specific command, run:
  srpcalc <command> --help

`)
}
