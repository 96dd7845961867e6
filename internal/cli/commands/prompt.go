package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// PasswordPrompt reads a password interactively.
type PasswordPrompt func(stdio IO) (string, error)

// promptPassword reads a hidden password from a terminal, or one line from any
// other input.
func promptPassword(stdio IO) (string, error) {
	fmt.Fprint(stdio.Err, "Password: ")

	if f, ok := stdio.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(stdio.Err)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := bufio.NewReader(stdio.In).ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
