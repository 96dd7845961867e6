// Package flow drives one USER_SRP_AUTH round trip against an identity provider:
// it opens the flow with SRP_A, answers the PASSWORD_VERIFIER challenge and hands the
// issued tokens back to the caller. Transport is left to the IdentityProvider.
//
// Authenticator.Login is the integration point for applications: they supply an
// IdentityProvider backed by their own HTTP or SDK client. srpcalc stays offline and
// does not call it.
//
//go:generate go tool mockgen -destination=mock_provider.go -package=flow github.com/fzdarsky/cognito-srp/internal/flow IdentityProvider
package flow
