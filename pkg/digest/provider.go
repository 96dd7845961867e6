package digest

import (
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// Algorithm names a hash function.
type Algorithm string

// SHA256Algorithm is the only supported algorithm.
const SHA256Algorithm Algorithm = "sha256"

// HashProvider creates hash and HMAC engines by algorithm name.
type HashProvider interface {
	NewHash(alg Algorithm) (Engine, error)
	NewHMAC(alg Algorithm, key []byte) (*HMAC, error)
}

// Provider is the built-in HashProvider. It supports SHA-256 only.
type Provider struct{}

// NewProvider returns the built-in HashProvider.
func NewProvider() *Provider {
	return &Provider{}
}

// NewHash returns a fresh engine for alg.
func (p *Provider) NewHash(alg Algorithm) (Engine, error) {
	if alg != SHA256Algorithm {
		return nil, protocol.NewUnsupportedAlgorithmError(string(alg))
	}
	return NewSHA256(), nil
}

// NewHMAC returns an HMAC keyed with key for alg.
func (p *Provider) NewHMAC(alg Algorithm, key []byte) (*HMAC, error) {
	if alg != SHA256Algorithm {
		return nil, protocol.NewUnsupportedAlgorithmError(string(alg))
	}
	return NewHMAC(func() Engine { return NewSHA256() }, key, SHA256BlockSize), nil
}

// Sum hashes the concatenation of parts with alg.
func Sum(p HashProvider, alg Algorithm, parts ...[]byte) ([]byte, error) {
	e, err := p.NewHash(alg)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		if err := e.Update(part); err != nil {
			return nil, err
		}
	}
	return e.Digest(), nil
}

// MAC computes the HMAC of the concatenation of parts with alg.
func MAC(p HashProvider, alg Algorithm, key []byte, parts ...[]byte) ([]byte, error) {
	m, err := p.NewHMAC(alg, key)
	if err != nil {
		return nil, err
	}
	for _, part := range parts {
		m.Update(part)
	}
	return m.Digest(), nil
}
