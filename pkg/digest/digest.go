// Package digest implements the SHA-256 and HMAC engines used by the SRP client.
//
// Engines are single-use accumulators: Update any number of times, then Digest once.
// After Digest an engine is finished; Update returns ErrFinished and leaves the state
// untouched, and further Digest calls return the cached sum.
package digest

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrFinished is returned by Update once Digest has been called.
var ErrFinished = errors.New("digest: engine already finished")

// Engine is a streaming hash function.
type Engine interface {
	// Update appends p to the message.
	Update(p []byte) error
	// Digest finalizes the engine and returns the raw sum.
	Digest() []byte
	// Finished reports whether Digest has been called.
	Finished() bool
	// Size is the digest length in bytes.
	Size() int
	// BlockSize is the compression block length in bytes.
	BlockSize() int
}

// Encoding selects the textual form of a digest.
type Encoding string

// Supported encodings.
const (
	EncodingRaw    Encoding = "raw"
	EncodingHex    Encoding = "hex"
	EncodingBase64 Encoding = "base64"
)

// ParseEncoding parses an encoding name.
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingRaw, EncodingHex, EncodingBase64:
		return Encoding(s), nil
	default:
		return "", fmt.Errorf("invalid encoding '%s': must be 'raw', 'hex' or 'base64'", s)
	}
}

// Encode renders sum in the given encoding. Raw returns the bytes unchanged as a string.
func Encode(sum []byte, enc Encoding) string {
	switch enc {
	case EncodingHex:
		return hex.EncodeToString(sum)
	case EncodingBase64:
		return base64.StdEncoding.EncodeToString(sum)
	default:
		return string(sum)
	}
}

// DigestString finalizes e and returns the encoded sum.
func DigestString(e Engine, enc Encoding) string {
	return Encode(e.Digest(), enc)
}
