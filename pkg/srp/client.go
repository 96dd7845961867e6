package srp

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/fzdarsky/cognito-srp/pkg/bigint"
	"github.com/fzdarsky/cognito-srp/pkg/digest"
	"github.com/fzdarsky/cognito-srp/pkg/entropy"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

const (
	// smallABytes is the amount of entropy drawn for the ephemeral private value.
	smallABytes = 128

	// DerivedKeySize is the length of the session key in bytes.
	DerivedKeySize = 16
)

// derivedKeyInfo is the HKDF info string followed by the 0x01 counter byte.
var derivedKeyInfo = []byte("Caldera Derived Key\x01")

// State is the position of a Client in the challenge round trip.
type State int

// Client states. A client only moves forward and never leaves ResponseReady or Aborted.
const (
	StateInitialized State = iota + 1
	StateChallengeReceived
	StateKeyDerived
	StateResponseReady
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateChallengeReceived:
		return "challenge-received"
	case StateKeyDerived:
		return "key-derived"
	case StateResponseReady:
		return "response-ready"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Client is the client-side state for exactly one SRP authentication attempt.
// A Client must not be reused for a second attempt or shared between goroutines.
type Client struct {
	pool   string
	group  *Group
	hashes digest.HashProvider
	random entropy.RandomProvider
	now    func() time.Time
	format TimestampFormat

	state  State
	a      bigint.Int // ephemeral private value, scrubbed once the key is derived or on any error
	largeA bigint.Int // ephemeral public value
}

// Option configures a Client.
type Option func(*Client)

// WithGroup overrides the default 3072-bit group.
func WithGroup(g *Group) Option {
	return func(c *Client) { c.group = g }
}

// WithHashProvider overrides the built-in SHA-256 provider.
func WithHashProvider(p digest.HashProvider) Option {
	return func(c *Client) { c.hashes = p }
}

// WithRandomProvider overrides the system CSPRNG.
func WithRandomProvider(r entropy.RandomProvider) Option {
	return func(c *Client) { c.random = r }
}

// WithClock overrides the clock used for the response timestamp.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithTimestampFormat selects the timestamp rendering signed into the response.
func WithTimestampFormat(f TimestampFormat) Option {
	return func(c *Client) { c.format = f }
}

// NewClient starts an authentication attempt for the given pool name (the part of the
// user pool id after the underscore, see protocol.PoolName). It draws the ephemeral
// private value a and computes A = g^a mod N.
func NewClient(pool string, opts ...Option) (*Client, error) {
	c := &Client{
		pool:   pool,
		hashes: digest.NewProvider(),
		random: entropy.System(),
		now:    time.Now,
		format: TimestampStandard,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.group == nil {
		c.group = DefaultGroup()
	}

	raw, err := c.random.RandomBytes(smallABytes)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random a: %w", err)
	}
	r := bigint.FromBytes(raw)
	clear(raw)
	c.a = r.Mod(c.group.N)
	r.Scrub()

	c.largeA = bigint.ModPow(c.group.G, c.a, c.group.N)
	if c.largeA.Mod(c.group.N).IsZero() {
		c.a.Scrub()
		return nil, protocol.NewInvalidGroupParameterError("A mod N cannot be 0")
	}

	c.state = StateInitialized
	return c, nil
}

// Pool returns the pool name the client was created for.
func (c *Client) Pool() string {
	return c.pool
}

// State returns the current state.
func (c *Client) State() State {
	return c.state
}

// LargeA returns a copy of the ephemeral public value A.
func (c *Client) LargeA() bigint.Int {
	return bigint.FromBytes(c.largeA.Bytes())
}

// LargeAHex returns A in the hex form sent as SRP_A.
func (c *Client) LargeAHex() string {
	return c.largeA.Hex()
}

// InitiateAuthParameters returns the parameters that open the USER_SRP_AUTH flow.
func (c *Client) InitiateAuthParameters(username string) protocol.InitiateAuthParameters {
	return protocol.InitiateAuthParameters{
		Username: username,
		SRPA:     c.LargeAHex(),
	}
}

// ComputeAuthenticationKey processes the server challenge and returns the 16-byte
// session key.
//
// A zero B mod N or zero U is rejected with AUTH_ABORTED. A is left as it was, but a
// is scrubbed and the client is aborted on every error path, so the caller must start
// a new session. Calling it on a client that has already processed a challenge panics.
func (c *Client) ComputeAuthenticationKey(username, password string, serverB, salt bigint.Int) ([]byte, error) {
	if c.state != StateInitialized {
		panic(fmt.Sprintf("srp: ComputeAuthenticationKey called in state %s", c.state))
	}
	n := c.group.N

	if serverB.Mod(n).IsZero() {
		c.abort()
		return nil, protocol.NewAbortAuthError("B cannot be zero")
	}

	u, err := c.scramble(serverB)
	if err != nil {
		c.abort()
		return nil, err
	}
	if u.IsZero() {
		c.abort()
		return nil, protocol.NewAbortAuthError("U cannot be zero")
	}

	c.state = StateChallengeReceived
	key, err := c.deriveKey(username, password, serverB, salt, u)
	if err != nil {
		c.abort()
		return nil, err
	}
	c.a.Scrub()

	c.state = StateKeyDerived
	return key, nil
}

// abort scrubs a and moves the client to its terminal failure state.
func (c *Client) abort() {
	c.a.Scrub()
	c.state = StateAborted
}

// deriveKey computes x, S and the HKDF-style session key. x and S are scrubbed on return.
func (c *Client) deriveKey(username, password string, serverB, salt, u bigint.Int) ([]byte, error) {
	x, err := c.privateKey(username, password, salt)
	if err != nil {
		return nil, err
	}
	defer x.Scrub()

	s := c.sharedSecret(x, serverB, u)
	defer s.Scrub()

	sBytes := s.PadBytes()
	defer clear(sBytes)

	prk, err := digest.MAC(c.hashes, digest.SHA256Algorithm, u.PadBytes(), sBytes)
	if err != nil {
		return nil, err
	}
	defer clear(prk)

	okm, err := digest.MAC(c.hashes, digest.SHA256Algorithm, prk, derivedKeyInfo)
	if err != nil {
		return nil, err
	}
	defer clear(okm)

	key := make([]byte, DerivedKeySize)
	copy(key, okm)
	return key, nil
}

// scramble computes U = H(pad(A) | pad(B)).
func (c *Client) scramble(serverB bigint.Int) (bigint.Int, error) {
	sum, err := digest.Sum(c.hashes, digest.SHA256Algorithm, c.largeA.PadBytes(), serverB.PadBytes())
	if err != nil {
		return bigint.Int{}, err
	}
	return bigint.FromBytes(sum), nil
}

// privateKey computes x = H(pad(salt) | H(pool | username | ":" | password)).
func (c *Client) privateKey(username, password string, salt bigint.Int) (bigint.Int, error) {
	secret := []byte(c.pool + username + ":" + password)
	defer clear(secret)

	inner, err := digest.Sum(c.hashes, digest.SHA256Algorithm, secret)
	if err != nil {
		return bigint.Int{}, err
	}
	defer clear(inner)

	// The identity provider hashes the hex digest left-padded to 64 digits.
	innerHex := hex.EncodeToString(inner)
	innerHex = strings.Repeat("0", 2*digest.SHA256Size-len(innerHex)) + innerHex
	innerBytes, err := hex.DecodeString(innerHex)
	if err != nil {
		return bigint.Int{}, fmt.Errorf("failed to decode password hash: %w", err)
	}
	defer clear(innerBytes)

	sum, err := digest.Sum(c.hashes, digest.SHA256Algorithm, salt.PadBytes(), innerBytes)
	if err != nil {
		return bigint.Int{}, err
	}
	defer clear(sum)

	return bigint.FromBytes(sum), nil
}

// sharedSecret computes S = (B - k*g^x)^(a + u*x) mod N.
func (c *Client) sharedSecret(x, serverB, u bigint.Int) bigint.Int {
	n := c.group.N

	gx := bigint.ModPow(c.group.G, x, n)
	kgx := c.group.K.Mul(gx).Mod(n)

	// B mod N + N - kgx is positive because both terms are below N.
	base := serverB.Mod(n).Add(n).Sub(kgx).Mod(n)

	ux := u.Mul(x)
	exponent := c.a.Add(ux)
	defer exponent.Scrub()
	defer ux.Scrub()

	return bigint.ModPow(base, exponent, n)
}

// BuildChallengeResponse signs pool | username | secret block | timestamp with the
// derived key. It panics unless a key has been derived and no response built yet.
func (c *Client) BuildChallengeResponse(username, secretBlock string, key []byte) (*protocol.AuthResponse, error) {
	if c.state != StateKeyDerived {
		panic(fmt.Sprintf("srp: BuildChallengeResponse called in state %s", c.state))
	}

	block, err := base64.StdEncoding.DecodeString(secretBlock)
	if err != nil {
		return nil, protocol.NewInvalidChallengeError(fmt.Sprintf("SECRET_BLOCK is not base64: %v", err))
	}

	timestamp := FormatTimestamp(c.now(), c.format)

	mac, err := digest.MAC(c.hashes, digest.SHA256Algorithm, key,
		[]byte(c.pool),
		[]byte(username),
		block,
		[]byte(timestamp),
	)
	if err != nil {
		return nil, err
	}

	c.state = StateResponseReady
	return &protocol.AuthResponse{
		Username:    username,
		SecretBlock: secretBlock,
		Timestamp:   timestamp,
		Signature:   base64.StdEncoding.EncodeToString(mac),
	}, nil
}

// RespondToChallenge runs both steps for a PASSWORD_VERIFIER challenge, using
// USER_ID_FOR_SRP as the username. The derived key never leaves this call.
func (c *Client) RespondToChallenge(params protocol.ChallengeParameters, password string) (*protocol.AuthResponse, error) {
	serverB, err := bigint.FromHex(params.SRPB)
	if err != nil {
		return nil, protocol.NewInvalidChallengeError("SRP_B is not a hex integer")
	}
	salt, err := bigint.FromHex(params.Salt)
	if err != nil {
		return nil, protocol.NewInvalidChallengeError("SALT is not a hex integer")
	}
	if _, err := base64.StdEncoding.DecodeString(params.SecretBlock); err != nil {
		return nil, protocol.NewInvalidChallengeError("SECRET_BLOCK is not base64")
	}

	key, err := c.ComputeAuthenticationKey(params.UserIDForSRP, password, serverB, salt)
	if err != nil {
		return nil, err
	}
	defer clear(key)

	return c.BuildChallengeResponse(params.UserIDForSRP, params.SecretBlock, key)
}

// Close scrubs the ephemeral private value. It is safe to call in any state and more
// than once; a closed client that has not derived a key is marked aborted.
func (c *Client) Close() {
	c.a.Scrub()
	if c.state == StateInitialized || c.state == StateChallengeReceived {
		c.state = StateAborted
	}
}
