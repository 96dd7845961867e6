// Package output renders command results for srpcalc.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// Format represents an output format.
type Format string

const (
	// FormatJSON is indented JSON using the identity provider's field names (default).
	FormatJSON Format = "json"
	// FormatYAML is YAML with the same field names.
	FormatYAML Format = "yaml"
)

// FormatData formats data according to the specified format.
func FormatData(data any, format Format) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(data)
	case FormatYAML:
		return formatYAML(data)
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// Write formats data and writes it to w followed by a newline when needed.
func Write(w io.Writer, data any, format Format) error {
	s, err := FormatData(data, format)
	if err != nil {
		return err
	}
	if len(s) == 0 || s[len(s)-1] != '\n' {
		s += "\n"
	}
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func formatYAML(data any) (string, error) {
	b, err := yaml.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("failed to format as YAML: %w", err)
	}
	return string(b), nil
}

func formatJSON(data any) (string, error) {
	b, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to format as JSON: %w", err)
	}
	return string(b), nil
}

// ParseFormat parses a format string into a Format value.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", protocol.NewConfigurationError(fmt.Sprintf("invalid output format '%s': must be 'json' or 'yaml'", s))
	}
}
