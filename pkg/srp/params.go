// Package srp implements the client side of the identity provider's SRP password
// verifier flow: ephemeral key generation, challenge processing, session key
// derivation and the signed challenge response.
package srp

import (
	"fmt"
	"sync"

	"github.com/fzdarsky/cognito-srp/pkg/bigint"
	"github.com/fzdarsky/cognito-srp/pkg/digest"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// rfc5054N3072 is the 3072-bit safe prime from RFC 5054 Appendix A.
// It MUST match the identity provider's group exactly.
const rfc5054N3072 = "FFFFFFFFFFFFFFFFC90FDAA22168C234C4C6628B80DC1CD1" +
	"29024E088A67CC74020BBEA63B139B22514A08798E3404DD" +
	"EF9519B3CD3A431B302B0A6DF25F14374FE1356D6D51C245" +
	"E485B576625E7EC6F44C42E9A637ED6B0BFF5CB6F406B7ED" +
	"EE386BFB5A899FA5AE9F24117C4B1FE649286651ECE45B3D" +
	"C2007CB8A163BF0598DA48361C55D39A69163FA8FD24CF5F" +
	"83655D23DCA3AD961C62F356208552BB9ED529077096966D" +
	"670C354E4ABC9804F1746C08CA18217C32905E462E36CE3B" +
	"E39E772C180E86039B2783A2EC07A28FB5C55DF06F4C52C9" +
	"DE2BCBF6955817183995497CEA956AE515D2261898FA0510" +
	"15728E5A8AAAC42DAD33170D04507A33A85521ABDF1CBA64" +
	"ECFB850458DBEF0A8AEA71575D060C7DB3970F85A6E1E4C7" +
	"ABF5AE8CDB0933D71E8C94E04A25619DCEE3D2261AD2EE6B" +
	"F12FFA06D98A0864D87602733EC86A64521F2B18177B200C" +
	"BBE117577A615D6C770988C0BAD946E208E24FA074E5AB31" +
	"43DB5BFCE0FD108E4B82D120A93AD2CAFFFFFFFFFFFFFFFF"

// Group holds the SRP group constants. Values are immutable once built.
type Group struct {
	N bigint.Int // safe prime modulus
	G bigint.Int // generator
	K bigint.Int // multiplier k = H(pad(N) | pad(g))
}

var (
	defaultGroup     *Group
	defaultGroupOnce sync.Once
)

// DefaultGroup returns the 3072-bit group with g = 2, computed once per process.
func DefaultGroup() *Group {
	defaultGroupOnce.Do(func() {
		g, err := NewGroup(rfc5054N3072, "2", digest.NewProvider())
		if err != nil {
			panic(fmt.Sprintf("srp: default group: %v", err))
		}
		defaultGroup = g
	})
	return defaultGroup
}

// NewGroup builds a group from hex-encoded N and g, deriving k with SHA-256.
func NewGroup(nHex, gHex string, hashes digest.HashProvider) (*Group, error) {
	n, err := bigint.FromHex(nHex)
	if err != nil {
		return nil, protocol.NewInvalidGroupParameterError(fmt.Sprintf("N: %v", err))
	}
	g, err := bigint.FromHex(gHex)
	if err != nil {
		return nil, protocol.NewInvalidGroupParameterError(fmt.Sprintf("g: %v", err))
	}
	if n.Cmp(bigint.FromInt64(3)) < 0 {
		return nil, protocol.NewInvalidGroupParameterError("N is too small")
	}
	if g.IsZero() || g.Cmp(n) >= 0 {
		return nil, protocol.NewInvalidGroupParameterError("g must be in [1, N)")
	}

	sum, err := digest.Sum(hashes, digest.SHA256Algorithm, n.PadBytes(), g.PadBytes())
	if err != nil {
		return nil, err
	}

	return &Group{N: n, G: g, K: bigint.FromBytes(sum)}, nil
}
