// Package logging provides structured logging with secret redaction for the SRP
// tooling. Log lines never carry passwords, private values or derived keys.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// Level is the severity of a log entry.
type Level string

// Log severity levels.
const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

var levelRank = map[Level]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

// ParseLevel validates a configured level name. The empty string means info.
func ParseLevel(s string) (Level, error) {
	if s == "" {
		return LevelInfo, nil
	}
	l := Level(strings.ToLower(s))
	if _, ok := levelRank[l]; !ok {
		return "", protocol.NewConfigurationError(fmt.Sprintf("unknown log level %q", s))
	}
	return l, nil
}

// Format is the rendering of log entries.
type Format string

// Log output formats.
const (
	// FormatJSON writes one JSON object per line (default).
	FormatJSON Format = "json"
	// FormatHuman writes "[time] level: message key=value" lines.
	FormatHuman Format = "human"
)

// ParseFormat validates a configured format name. The empty string means JSON.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatHuman:
		return f, nil
	default:
		return "", protocol.NewConfigurationError(fmt.Sprintf("unknown log format %q", s))
	}
}

// Logger writes redacted structured entries. It is safe for concurrent use.
type Logger struct {
	level    Level
	format   Format
	redactor *Redactor
	now      func() time.Time

	mu  sync.Mutex
	out io.Writer
}

type entry struct {
	Timestamp string         `json:"timestamp"`
	Level     Level          `json:"level"`
	Message   string         `json:"message"`
	Fields    map[string]any `json:"fields,omitempty"`
}

// New creates a Logger writing to stderr, so command output on stdout stays clean.
func New(level Level, format Format) *Logger {
	return &Logger{
		level:    level,
		format:   format,
		redactor: NewRedactor(),
		now:      time.Now,
		out:      os.Stderr,
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	l := New(LevelError, FormatJSON)
	l.out = io.Discard
	return l
}

// SetOutput redirects the logger, mostly for tests.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = w
}

// SetLevel changes the minimum level written.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetClock overrides the entry timestamp source.
func (l *Logger) SetClock(now func() time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.now = now
}

// Redactor returns the redactor so callers can register extra sensitive keys.
func (l *Logger) Redactor() *Redactor {
	return l.redactor
}

// Debug logs a debug-level message.
func (l *Logger) Debug(msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// DebugContext logs a debug-level message.
func (l *Logger) DebugContext(_ context.Context, msg string, fields ...map[string]any) {
	l.log(LevelDebug, msg, mergeFields(fields...))
}

// Info logs an info-level message.
func (l *Logger) Info(msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// InfoContext logs an info-level message.
func (l *Logger) InfoContext(_ context.Context, msg string, fields ...map[string]any) {
	l.log(LevelInfo, msg, mergeFields(fields...))
}

// Warn logs a warn-level message.
func (l *Logger) Warn(msg string, fields ...map[string]any) {
	l.log(LevelWarn, msg, mergeFields(fields...))
}

// Error logs an error-level message.
func (l *Logger) Error(msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

// ErrorContext logs an error-level message.
func (l *Logger) ErrorContext(_ context.Context, msg string, fields ...map[string]any) {
	l.log(LevelError, msg, mergeFields(fields...))
}

// Enabled reports whether entries at level are written.
func (l *Logger) Enabled(level Level) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return levelRank[level] >= levelRank[l.level]
}

func (l *Logger) log(level Level, msg string, fields map[string]any) {
	if !l.Enabled(level) {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := entry{
		Timestamp: l.now().UTC().Format(time.RFC3339),
		Level:     level,
		Message:   msg,
		Fields:    l.redactor.RedactFields(fields),
	}

	var line string
	if l.format == FormatHuman {
		line = formatHuman(e)
	} else {
		line = formatJSON(e)
	}
	_, _ = io.WriteString(l.out, line)
}

func formatJSON(e entry) string {
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Sprintf(`{"timestamp":%q,"level":"error","message":"failed to marshal log entry: %s"}`+"\n",
			e.Timestamp, err.Error())
	}
	return string(data) + "\n"
}

func formatHuman(e entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s: %s", e.Timestamp, e.Level, e.Message)
	for _, k := range slices.Sorted(maps.Keys(e.Fields)) {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	b.WriteString("\n")
	return b.String()
}

func mergeFields(fields ...map[string]any) map[string]any {
	if len(fields) == 0 {
		return nil
	}
	merged := make(map[string]any)
	for _, f := range fields {
		maps.Copy(merged, f)
	}
	return merged
}

// WithFields returns a logger that adds fields to every entry.
func (l *Logger) WithFields(fields map[string]any) *ContextLogger {
	return &ContextLogger{logger: l, fields: fields}
}

// ContextLogger wraps a Logger with fixed fields, such as the attempt's username.
type ContextLogger struct {
	logger *Logger
	fields map[string]any
}

func (cl *ContextLogger) with(fields []map[string]any) map[string]any {
	return mergeFields(append([]map[string]any{cl.fields}, fields...)...)
}

// Debug logs a debug-level message with the context fields.
func (cl *ContextLogger) Debug(msg string, fields ...map[string]any) {
	cl.logger.Debug(msg, cl.with(fields))
}

// Info logs an info-level message with the context fields.
func (cl *ContextLogger) Info(msg string, fields ...map[string]any) {
	cl.logger.Info(msg, cl.with(fields))
}

// Warn logs a warn-level message with the context fields.
func (cl *ContextLogger) Warn(msg string, fields ...map[string]any) {
	cl.logger.Warn(msg, cl.with(fields))
}

// Error logs an error-level message with the context fields.
func (cl *ContextLogger) Error(msg string, fields ...map[string]any) {
	cl.logger.Error(msg, cl.with(fields))
}
