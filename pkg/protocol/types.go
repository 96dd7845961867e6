package protocol

import (
	"fmt"
	"strings"
)

// Auth flow and challenge names used by the identity provider.
const (
	AuthFlowUserSRP           = "USER_SRP_AUTH"
	ChallengePasswordVerifier = "PASSWORD_VERIFIER"
)

// InitiateAuthParameters is sent before the challenge. SRP_A is hex-encoded.
type InitiateAuthParameters struct {
	Username string `json:"USERNAME" yaml:"USERNAME"`
	SRPA     string `json:"SRP_A"    yaml:"SRP_A"`
}

// InitiateAuthRequest wraps the parameters with the flow and app client identifiers.
type InitiateAuthRequest struct {
	ClientID       string                 `json:"ClientId"`
	AuthFlow       string                 `json:"AuthFlow"`
	AuthParameters InitiateAuthParameters `json:"AuthParameters"`
}

// ChallengeParameters is the server's PASSWORD_VERIFIER challenge.
type ChallengeParameters struct {
	SRPB         string `json:"SRP_B"           yaml:"SRP_B"`           // hex
	Salt         string `json:"SALT"            yaml:"SALT"`            // hex
	SecretBlock  string `json:"SECRET_BLOCK"    yaml:"SECRET_BLOCK"`    // base64, opaque
	UserIDForSRP string `json:"USER_ID_FOR_SRP" yaml:"USER_ID_FOR_SRP"`
}

// InitiateAuthResponse carries the challenge returned for USER_SRP_AUTH.
type InitiateAuthResponse struct {
	ChallengeName       string              `json:"ChallengeName"`
	ChallengeParameters ChallengeParameters `json:"ChallengeParameters"`
}

// AuthResponse is the signed answer to a PASSWORD_VERIFIER challenge.
type AuthResponse struct {
	Username    string `json:"USERNAME"                    yaml:"USERNAME"`
	SecretBlock string `json:"PASSWORD_CLAIM_SECRET_BLOCK" yaml:"PASSWORD_CLAIM_SECRET_BLOCK"`
	Timestamp   string `json:"TIMESTAMP"                   yaml:"TIMESTAMP"`
	Signature   string `json:"PASSWORD_CLAIM_SIGNATURE"    yaml:"PASSWORD_CLAIM_SIGNATURE"`
}

// RespondToAuthChallengeRequest wraps an AuthResponse for transmission.
type RespondToAuthChallengeRequest struct {
	ClientID           string       `json:"ClientId"`
	ChallengeName      string       `json:"ChallengeName"`
	ChallengeResponses AuthResponse `json:"ChallengeResponses"`
}

// AuthenticationResult holds the tokens issued after a successful challenge.
// Persisting them is the caller's business.
type AuthenticationResult struct {
	AccessToken  string `json:"AccessToken"`
	IDToken      string `json:"IdToken"`
	RefreshToken string `json:"RefreshToken,omitempty"`
	TokenType    string `json:"TokenType"`
	ExpiresIn    int    `json:"ExpiresIn"`
}

// PoolName extracts the pool identifier mixed into the password hash from a user
// pool id such as "us-east-1_ABC123".
func PoolName(userPoolID string) (string, error) {
	parts := strings.Split(userPoolID, "_")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", NewConfigurationError(fmt.Sprintf("malformed user pool id %q", userPoolID))
	}
	return parts[1], nil
}
