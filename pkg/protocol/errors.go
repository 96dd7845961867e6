// Package protocol defines the records exchanged with the identity provider and the
// typed errors surfaced by the SRP engine.
package protocol

import (
	"errors"
	"fmt"
)

// ErrorCode represents a standardized error code for SRP failures.
type ErrorCode string

// Error codes.
const (
	// ErrCodeInvalidGroupParameter indicates A mod N == 0 or unusable group constants.
	ErrCodeInvalidGroupParameter ErrorCode = "INVALID_GROUP_PARAMETER"
	// ErrCodeAuthAborted indicates a zero-value rejection during key computation.
	ErrCodeAuthAborted ErrorCode = "AUTH_ABORTED"
	// ErrCodeRandomSourceUnavailable indicates no secure entropy could be read.
	ErrCodeRandomSourceUnavailable ErrorCode = "RANDOM_SOURCE_UNAVAILABLE"
	// ErrCodeUnsupportedAlgorithm indicates a hash algorithm other than SHA-256 was requested.
	ErrCodeUnsupportedAlgorithm ErrorCode = "UNSUPPORTED_ALGORITHM"

	// ErrCodeInvalidChallenge indicates malformed challenge parameters.
	ErrCodeInvalidChallenge ErrorCode = "INVALID_CHALLENGE"
	// ErrCodeConfigurationError indicates invalid configuration.
	ErrCodeConfigurationError ErrorCode = "CONFIGURATION_ERROR"
)

// ErrorResponse is the typed failure returned by every package of this module.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is an *ErrorResponse with the same code, so callers can
// write errors.Is(err, protocol.ErrAuthAborted).
func (e *ErrorResponse) Is(target error) bool {
	var other *ErrorResponse
	if !errors.As(target, &other) {
		return false
	}
	return e.Code == other.Code
}

// Sentinels for errors.Is matching.
var (
	ErrInvalidGroupParameter   = &ErrorResponse{Code: ErrCodeInvalidGroupParameter}
	ErrAuthAborted             = &ErrorResponse{Code: ErrCodeAuthAborted}
	ErrRandomSourceUnavailable = &ErrorResponse{Code: ErrCodeRandomSourceUnavailable}
	ErrUnsupportedAlgorithm    = &ErrorResponse{Code: ErrCodeUnsupportedAlgorithm}
	ErrInvalidChallenge        = &ErrorResponse{Code: ErrCodeInvalidChallenge}
	ErrConfiguration           = &ErrorResponse{Code: ErrCodeConfigurationError}
)

// CodeOf returns the error code carried by err, or "" if err is not typed.
func CodeOf(err error) ErrorCode {
	var resp *ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code
	}
	return ""
}

// NewError creates a new ErrorResponse.
func NewError(code ErrorCode, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

// NewErrorWithDetails creates a new ErrorResponse with details.
func NewErrorWithDetails(code ErrorCode, message, details string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewInvalidGroupParameterError creates an invalid group parameter error.
func NewInvalidGroupParameterError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidGroupParameter, "Illegal group parameter", details)
}

// NewAbortAuthError creates an aborted authentication error. reason must not carry secrets.
func NewAbortAuthError(reason string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeAuthAborted, "Authentication aborted", reason)
}

// NewRandomSourceUnavailableError creates a random source error.
func NewRandomSourceUnavailableError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeRandomSourceUnavailable, "Secure random source unavailable", details)
}

// NewUnsupportedAlgorithmError creates an unsupported algorithm error.
func NewUnsupportedAlgorithmError(algorithm string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeUnsupportedAlgorithm, "Unsupported hash algorithm", algorithm)
}

// NewInvalidChallengeError creates an invalid challenge error.
func NewInvalidChallengeError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeInvalidChallenge, "Invalid challenge parameters", details)
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(details string) *ErrorResponse {
	return NewErrorWithDetails(ErrCodeConfigurationError, "Configuration error", details)
}
