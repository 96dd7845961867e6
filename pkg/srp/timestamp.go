package srp

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// TimestampFormat selects how the signed TIMESTAMP field is rendered.
type TimestampFormat string

const (
	// TimestampStandard renders "Www Mon D HH:mm:ss UTC YYYY" with correct fields.
	TimestampStandard TimestampFormat = "standard"

	// TimestampLegacy reproduces the historical client: minutes and seconds of 10 or
	// more are replaced by the unpadded hour. Only for verifiers built against it.
	TimestampLegacy TimestampFormat = "legacy"
)

const timestampLayout = "Mon Jan 2 15:04:05 UTC 2006"

// ParseTimestampFormat parses a format name; the empty string selects TimestampStandard.
func ParseTimestampFormat(s string) (TimestampFormat, error) {
	switch TimestampFormat(s) {
	case "", TimestampStandard:
		return TimestampStandard, nil
	case TimestampLegacy:
		return TimestampLegacy, nil
	default:
		return "", protocol.NewConfigurationError(fmt.Sprintf("invalid timestamp format '%s': must be 'standard' or 'legacy'", s))
	}
}

// FormatTimestamp renders t in UTC for signing.
func FormatTimestamp(t time.Time, f TimestampFormat) string {
	t = t.UTC()
	if f != TimestampLegacy {
		return t.Format(timestampLayout)
	}

	hours := t.Hour()
	hourStr := strconv.Itoa(hours)
	if hours < 10 {
		hourStr = "0" + hourStr
	}

	minuteStr := strconv.Itoa(hours)
	if t.Minute() < 10 {
		minuteStr = "0" + strconv.Itoa(t.Minute())
	}

	secondStr := strconv.Itoa(hours)
	if t.Second() < 10 {
		secondStr = "0" + strconv.Itoa(t.Second())
	}

	return fmt.Sprintf("%s %s %d %s:%s:%s UTC %d",
		t.Format("Mon"), t.Format("Jan"), t.Day(), hourStr, minuteStr, secondStr, t.Year())
}
