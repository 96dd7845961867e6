// Package entropy supplies cryptographically secure random bytes to the SRP engine.
package entropy

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// RandomProvider yields secure random bytes.
type RandomProvider interface {
	RandomBytes(n int) ([]byte, error)
}

// Source reads random bytes from an entropy reader. There is no fallback: a failed or
// short read is reported as RANDOM_SOURCE_UNAVAILABLE.
type Source struct {
	r io.Reader
}

// System returns a Source backed by the operating system CSPRNG.
func System() *Source {
	return &Source{r: rand.Reader}
}

// NewSource returns a Source reading from r. Production code should use System;
// deterministic readers are for test vectors.
func NewSource(r io.Reader) *Source {
	return &Source{r: r}
}

// RandomBytes returns n random bytes.
func (s *Source) RandomBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("invalid random length %d", n)
	}
	if s == nil || s.r == nil {
		return nil, protocol.NewRandomSourceUnavailableError("no entropy reader configured")
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(s.r, buf); err != nil {
		clear(buf)
		return nil, protocol.NewRandomSourceUnavailableError(err.Error())
	}
	return buf, nil
}
