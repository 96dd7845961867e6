package logging

import (
	"strings"
	"sync"
)

const redactedValue = "[REDACTED]"

// defaultSensitiveKeys are field names whose values never reach a log line.
var defaultSensitiveKeys = []string{
	// credentials
	"password",
	"passwd",

	// SRP private values and session material
	"a",
	"small_a",
	"x",
	"s",
	"shared_secret",
	"derived_key",
	"session_key",
	"hmac_key",
	"key",
	"signature",
	"password_claim_signature",

	// opaque server state
	"secret_block",
	"password_claim_secret_block",

	// tokens issued after a successful challenge
	"access_token",
	"id_token",
	"refresh_token",
	"token",
}

// Redactor replaces the values of sensitive fields. Key matching is case-insensitive
// and exact.
type Redactor struct {
	mu            sync.RWMutex
	sensitiveKeys map[string]bool
}

// NewRedactor creates a Redactor with the default sensitive keys.
func NewRedactor() *Redactor {
	r := &Redactor{sensitiveKeys: make(map[string]bool, len(defaultSensitiveKeys))}
	for _, k := range defaultSensitiveKeys {
		r.sensitiveKeys[k] = true
	}
	return r
}

// AddSensitiveKey adds a key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// IsSensitive reports whether values under key are redacted.
func (r *Redactor) IsSensitive(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sensitiveKeys[strings.ToLower(key)]
}

// RedactFields returns a copy of fields with sensitive values replaced. Nested maps
// are redacted recursively; byte slices are never logged verbatim.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))
	for k, v := range fields {
		switch {
		case r.IsSensitive(k):
			redacted[k] = redactedValue
		default:
			redacted[k] = r.redactValue(v)
		}
	}
	return redacted
}

func (r *Redactor) redactValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return r.RedactFields(val)
	case map[string]string:
		m := make(map[string]any, len(val))
		for k, s := range val {
			m[k] = s
		}
		return r.RedactFields(m)
	case []byte:
		return redactedValue
	default:
		return v
	}
}
