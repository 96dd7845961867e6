package srptest_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/fzdarsky/cognito-srp/internal/srptest"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ChallengeRejectsZeroA(t *testing.T) {
	group := srp.DefaultGroup()
	user := srptest.NewUser(group, "POOL", "alice", "pw", big.NewInt(7))
	server, err := srptest.NewServer(group, "POOL", user, nil, []byte("block"))
	require.NoError(t, err)

	n, ok := new(big.Int).SetString(group.N.Hex(), 16)
	require.True(t, ok)

	_, err = server.Challenge(n)
	assert.Error(t, err)
}

func TestServer_VerifyBeforeChallenge(t *testing.T) {
	group := srp.DefaultGroup()
	user := srptest.NewUser(group, "POOL", "alice", "pw", big.NewInt(7))
	server, err := srptest.NewServer(group, "POOL", user, big.NewInt(3), []byte("block"))
	require.NoError(t, err)

	assert.Error(t, server.Verify(protocol.AuthResponse{Username: "alice"}))
}

func TestProvider_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p := srptest.NewProvider(srp.DefaultGroup(), "POOL", "client-1")
	require.NoError(t, p.Register("alice", "pw"))

	c, err := srp.NewClient("POOL")
	require.NoError(t, err)

	challenge, err := p.InitiateAuth(ctx, protocol.InitiateAuthRequest{
		ClientID:       "client-1",
		AuthFlow:       protocol.AuthFlowUserSRP,
		AuthParameters: c.InitiateAuthParameters("alice"),
	})
	require.NoError(t, err)
	assert.Equal(t, protocol.ChallengePasswordVerifier, challenge.ChallengeName)
	assert.Equal(t, "alice", challenge.ChallengeParameters.UserIDForSRP)

	resp, err := c.RespondToChallenge(challenge.ChallengeParameters, "pw")
	require.NoError(t, err)

	tokens, err := p.RespondToAuthChallenge(ctx, protocol.RespondToAuthChallengeRequest{
		ClientID:           "client-1",
		ChallengeName:      protocol.ChallengePasswordVerifier,
		ChallengeResponses: *resp,
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", tokens.TokenType)
	assert.Equal(t, "id-alice", tokens.IDToken)

	// the challenge is consumed
	_, err = p.RespondToAuthChallenge(ctx, protocol.RespondToAuthChallengeRequest{
		ChallengeName:      protocol.ChallengePasswordVerifier,
		ChallengeResponses: *resp,
	})
	assert.Error(t, err)
}

func TestProvider_InitiateAuthErrors(t *testing.T) {
	ctx := context.Background()
	p := srptest.NewProvider(srp.DefaultGroup(), "POOL", "client-1")
	require.NoError(t, p.Register("alice", "pw"))

	tests := []struct {
		name string
		req  protocol.InitiateAuthRequest
	}{
		{
			name: "unknown client",
			req: protocol.InitiateAuthRequest{
				ClientID: "other", AuthFlow: protocol.AuthFlowUserSRP,
				AuthParameters: protocol.InitiateAuthParameters{Username: "alice", SRPA: "02"},
			},
		},
		{
			name: "wrong flow",
			req: protocol.InitiateAuthRequest{
				ClientID: "client-1", AuthFlow: "USER_PASSWORD_AUTH",
				AuthParameters: protocol.InitiateAuthParameters{Username: "alice", SRPA: "02"},
			},
		},
		{
			name: "unknown user",
			req: protocol.InitiateAuthRequest{
				ClientID: "client-1", AuthFlow: protocol.AuthFlowUserSRP,
				AuthParameters: protocol.InitiateAuthParameters{Username: "bob", SRPA: "02"},
			},
		},
		{
			name: "bad SRP_A",
			req: protocol.InitiateAuthRequest{
				ClientID: "client-1", AuthFlow: protocol.AuthFlowUserSRP,
				AuthParameters: protocol.InitiateAuthParameters{Username: "alice", SRPA: "xyz"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.InitiateAuth(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}
