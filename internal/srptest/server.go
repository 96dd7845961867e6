// Package srptest simulates the identity provider's side of the SRP password
// verifier flow so the client can be checked end to end without a network.
//
// It deliberately recomputes everything with crypto/sha256, crypto/hmac and
// math/big instead of the module's own engines, so it acts as an independent oracle.
package srptest

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"sync"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
)

// User is a registered account: the verifier is derived from the password once and
// the password itself is not kept.
type User struct {
	UserIDForSRP string
	Salt         *big.Int
	Verifier     *big.Int
}

// Server holds the server-side state for one challenge.
type Server struct {
	group *srp.Group
	pool  string
	user  User

	b      *big.Int
	B      *big.Int
	A      *big.Int
	key    []byte
	secret []byte
}

// NewUser derives the verifier v = g^x mod N for a password.
func NewUser(group *srp.Group, pool, userIDForSRP, password string, salt *big.Int) User {
	x := privateKey(pool, userIDForSRP, password, salt)
	n, g := toBig(group.N.Hex()), toBig(group.G.Hex())
	return User{
		UserIDForSRP: userIDForSRP,
		Salt:         salt,
		Verifier:     new(big.Int).Exp(g, x, n),
	}
}

// NewServer prepares a challenge with the given server private value b and opaque
// secret block. Pass a nil b to draw a random one.
func NewServer(group *srp.Group, pool string, user User, b *big.Int, secretBlock []byte) (*Server, error) {
	if b == nil {
		raw := make([]byte, 32)
		if _, err := rand.Read(raw); err != nil {
			return nil, fmt.Errorf("failed to generate random b: %w", err)
		}
		b = new(big.Int).SetBytes(raw)
	}
	return &Server{
		group:  group,
		pool:   pool,
		user:   user,
		b:      b,
		secret: secretBlock,
	}, nil
}

// Challenge answers the client's A with B = k*v + g^b mod N and the salt.
func (s *Server) Challenge(largeA *big.Int) (protocol.ChallengeParameters, error) {
	n, g, k := toBig(s.group.N.Hex()), toBig(s.group.G.Hex()), toBig(s.group.K.Hex())

	if new(big.Int).Mod(largeA, n).Sign() == 0 {
		return protocol.ChallengeParameters{}, fmt.Errorf("invalid A: A mod N == 0")
	}
	s.A = largeA

	kv := new(big.Int).Mul(k, s.user.Verifier)
	gb := new(big.Int).Exp(g, s.b, n)
	s.B = kv.Add(kv, gb).Mod(kv, n)

	// S = (A * v^u)^b mod N
	u := scramble(s.A, s.B)
	vu := new(big.Int).Exp(s.user.Verifier, u, n)
	avu := vu.Mul(vu, s.A).Mod(vu, n)
	secret := new(big.Int).Exp(avu, s.b, n)
	s.key = deriveKey(u, secret)

	return protocol.ChallengeParameters{
		SRPB:         s.B.Text(16),
		Salt:         s.user.Salt.Text(16),
		SecretBlock:  base64.StdEncoding.EncodeToString(s.secret),
		UserIDForSRP: s.user.UserIDForSRP,
	}, nil
}

// SessionKey returns the server's view of the 16-byte derived key.
func (s *Server) SessionKey() []byte {
	return s.key
}

// Verify checks the signature of a challenge response against the server key.
func (s *Server) Verify(resp protocol.AuthResponse) error {
	if s.key == nil {
		return fmt.Errorf("challenge must be issued before verify")
	}
	if resp.Username != s.user.UserIDForSRP {
		return fmt.Errorf("unexpected username %q", resp.Username)
	}
	if resp.SecretBlock != base64.StdEncoding.EncodeToString(s.secret) {
		return fmt.Errorf("secret block mismatch")
	}

	got, err := base64.StdEncoding.DecodeString(resp.Signature)
	if err != nil {
		return fmt.Errorf("invalid signature encoding: %w", err)
	}

	mac := hmac.New(sha256.New, s.key)
	mac.Write([]byte(s.pool))
	mac.Write([]byte(resp.Username))
	mac.Write(s.secret)
	mac.Write([]byte(resp.Timestamp))

	if subtle.ConstantTimeCompare(got, mac.Sum(nil)) != 1 {
		return fmt.Errorf("authentication failed: signature mismatch")
	}
	return nil
}

// Provider is an in-memory identity provider speaking the USER_SRP_AUTH flow.
type Provider struct {
	Group    *srp.Group
	Pool     string
	ClientID string

	mu      sync.Mutex
	users   map[string]User
	pending map[string]*Server
	issued  int
}

// NewProvider returns an empty provider for the given pool name.
func NewProvider(group *srp.Group, pool, clientID string) *Provider {
	return &Provider{
		Group:    group,
		Pool:     pool,
		ClientID: clientID,
		users:    make(map[string]User),
		pending:  make(map[string]*Server),
	}
}

// Register adds a user with a random salt.
func (p *Provider) Register(username, password string) error {
	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.users[username] = NewUser(p.Group, p.Pool, username, password, new(big.Int).SetBytes(raw))
	return nil
}

// InitiateAuth issues a PASSWORD_VERIFIER challenge.
func (p *Provider) InitiateAuth(_ context.Context, req protocol.InitiateAuthRequest) (*protocol.InitiateAuthResponse, error) {
	if req.ClientID != p.ClientID {
		return nil, fmt.Errorf("unknown client id %q", req.ClientID)
	}
	if req.AuthFlow != protocol.AuthFlowUserSRP {
		return nil, fmt.Errorf("unsupported auth flow %q", req.AuthFlow)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	user, ok := p.users[req.AuthParameters.Username]
	if !ok {
		return nil, fmt.Errorf("user not found")
	}
	largeA, ok := new(big.Int).SetString(req.AuthParameters.SRPA, 16)
	if !ok {
		return nil, fmt.Errorf("invalid SRP_A")
	}

	server, err := NewServer(p.Group, p.Pool, user, nil, []byte(fmt.Sprintf("secret-block-%d", p.issued)))
	if err != nil {
		return nil, err
	}
	params, err := server.Challenge(largeA)
	if err != nil {
		return nil, err
	}
	p.issued++
	p.pending[user.UserIDForSRP] = server

	return &protocol.InitiateAuthResponse{
		ChallengeName:       protocol.ChallengePasswordVerifier,
		ChallengeParameters: params,
	}, nil
}

// RespondToAuthChallenge verifies the signed response and issues tokens.
func (p *Provider) RespondToAuthChallenge(_ context.Context, req protocol.RespondToAuthChallengeRequest) (*protocol.AuthenticationResult, error) {
	if req.ChallengeName != protocol.ChallengePasswordVerifier {
		return nil, fmt.Errorf("unexpected challenge %q", req.ChallengeName)
	}

	p.mu.Lock()
	server, ok := p.pending[req.ChallengeResponses.Username]
	delete(p.pending, req.ChallengeResponses.Username)
	p.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("no pending challenge")
	}
	if err := server.Verify(req.ChallengeResponses); err != nil {
		return nil, err
	}

	return &protocol.AuthenticationResult{
		AccessToken: "access-" + hex.EncodeToString(server.key[:4]),
		IDToken:     "id-" + req.ChallengeResponses.Username,
		TokenType:   "Bearer",
		ExpiresIn:   3600,
	}, nil
}

func toBig(h string) *big.Int {
	v, ok := new(big.Int).SetString(h, 16)
	if !ok {
		panic("srptest: invalid hex " + h)
	}
	return v
}

// padHex mirrors the wire padding: even length, extra 00 when the top bit is set.
func padHex(v *big.Int) string {
	s := v.Text(16)
	if len(s)%2 == 1 {
		return "0" + s
	}
	if s[0] >= '8' {
		return "00" + s
	}
	return s
}

func padBytes(v *big.Int) []byte {
	b, _ := hex.DecodeString(padHex(v))
	return b
}

func scramble(a, b *big.Int) *big.Int {
	h := sha256.New()
	h.Write(padBytes(a))
	h.Write(padBytes(b))
	return new(big.Int).SetBytes(h.Sum(nil))
}

func privateKey(pool, username, password string, salt *big.Int) *big.Int {
	inner := sha256.Sum256([]byte(pool + username + ":" + password))
	h := sha256.New()
	h.Write(padBytes(salt))
	h.Write(inner[:])
	return new(big.Int).SetBytes(h.Sum(nil))
}

func deriveKey(u, secret *big.Int) []byte {
	prk := hmac.New(sha256.New, padBytes(u))
	prk.Write(padBytes(secret))
	okm := hmac.New(sha256.New, prk.Sum(nil))
	okm.Write([]byte("Caldera Derived Key\x01"))
	return okm.Sum(nil)[:srp.DerivedKeySize]
}
