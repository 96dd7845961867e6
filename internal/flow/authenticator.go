package flow

import (
	"context"
	"fmt"

	"github.com/fzdarsky/cognito-srp/internal/config"
	"github.com/fzdarsky/cognito-srp/internal/logging"
	"github.com/fzdarsky/cognito-srp/pkg/protocol"
	"github.com/fzdarsky/cognito-srp/pkg/srp"
)

// Authenticator logs users in against one user pool and app client.
type Authenticator struct {
	clientID string
	pool     string
	format   srp.TimestampFormat
	provider IdentityProvider
	logger   *logging.Logger
	opts     []srp.Option
}

// NewAuthenticator validates cfg and returns an Authenticator. opts are passed to every
// srp.Client it creates, after the configured timestamp format.
func NewAuthenticator(cfg *config.Config, provider IdentityProvider, logger *logging.Logger, opts ...srp.Option) (*Authenticator, error) {
	if err := cfg.RequireUserPool(); err != nil {
		return nil, err
	}
	pool, err := cfg.PoolName()
	if err != nil {
		return nil, err
	}
	format, err := cfg.Timestamp()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Authenticator{
		clientID: cfg.ClientID,
		pool:     pool,
		format:   format,
		provider: provider,
		logger:   logger,
		opts:     opts,
	}, nil
}

// Login runs one authentication attempt. Every call uses a fresh srp.Client; a failed
// attempt is never retried.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*protocol.AuthenticationResult, error) {
	log := a.logger.WithFields(map[string]any{
		"username": username,
		"pool":     a.pool,
	})

	opts := append([]srp.Option{srp.WithTimestampFormat(a.format)}, a.opts...)
	client, err := srp.NewClient(a.pool, opts...)
	if err != nil {
		log.Error("failed to start SRP session", map[string]any{"error": err.Error()})
		return nil, err
	}
	defer client.Close()

	log.Debug("initiating auth", map[string]any{"srp_a_bits": client.LargeA().BitLen()})

	challenge, err := a.provider.InitiateAuth(ctx, protocol.InitiateAuthRequest{
		ClientID:       a.clientID,
		AuthFlow:       protocol.AuthFlowUserSRP,
		AuthParameters: client.InitiateAuthParameters(username),
	})
	if err != nil {
		log.Error("initiate auth failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("failed to initiate auth: %w", err)
	}

	if challenge.ChallengeName != protocol.ChallengePasswordVerifier {
		return nil, protocol.NewInvalidChallengeError(fmt.Sprintf("unexpected challenge %q", challenge.ChallengeName))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Debug("challenge received", map[string]any{
		"user_id_for_srp": challenge.ChallengeParameters.UserIDForSRP,
	})

	response, err := client.RespondToChallenge(challenge.ChallengeParameters, password)
	if err != nil {
		log.Error("failed to answer challenge", map[string]any{
			"error": err.Error(),
			"code":  string(protocol.CodeOf(err)),
			"state": client.State().String(),
		})
		return nil, err
	}

	log.Debug("challenge response signed", map[string]any{
		"timestamp":        response.Timestamp,
		"timestamp_format": string(a.format),
	})

	tokens, err := a.provider.RespondToAuthChallenge(ctx, protocol.RespondToAuthChallengeRequest{
		ClientID:           a.clientID,
		ChallengeName:      protocol.ChallengePasswordVerifier,
		ChallengeResponses: *response,
	})
	if err != nil {
		log.Warn("challenge response rejected", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("failed to respond to auth challenge: %w", err)
	}

	log.Info("authentication succeeded", map[string]any{"expires_in": tokens.ExpiresIn})
	return tokens, nil
}
