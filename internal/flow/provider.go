package flow

import (
	"context"

	"github.com/fzdarsky/cognito-srp/pkg/protocol"
)

// IdentityProvider is the remote side of the password verifier flow.
type IdentityProvider interface {
	// InitiateAuth opens the flow and returns the server's challenge.
	InitiateAuth(ctx context.Context, req protocol.InitiateAuthRequest) (*protocol.InitiateAuthResponse, error)

	// RespondToAuthChallenge submits the signed response and returns the issued tokens.
	RespondToAuthChallenge(ctx context.Context, req protocol.RespondToAuthChallengeRequest) (*protocol.AuthenticationResult, error)
}
