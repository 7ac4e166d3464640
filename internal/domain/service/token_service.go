package service

import (
	"time"

	"github.com/google/uuid"
)

// TokenErrorKind classifies why a token failed validation, so the transport
// layer can pick the right response message.
type TokenErrorKind int

const (
	// TokenErrorInvalid covers signature mismatches and unexpected signing methods.
	TokenErrorInvalid TokenErrorKind = iota
	// TokenErrorExpired means the token was well-formed but past its expiry.
	TokenErrorExpired
	// TokenErrorMalformed means the string was not a parseable JWT at all.
	TokenErrorMalformed
)

// TokenError is the validation failure returned by TokenService.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

// Error implements the error interface.
func (e *TokenError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	switch e.Kind {
	case TokenErrorExpired:
		return "token expired"
	case TokenErrorMalformed:
		return "malformed token"
	default:
		return "invalid token"
	}
}

// Unwrap returns the underlying parse error.
func (e *TokenError) Unwrap() error {
	return e.Err
}

// TokenService defines the interface for generating and validating JWTs.
// Access and refresh tokens are signed with independent secrets, so a
// refresh token never passes access validation and vice versa.
type TokenService interface {
	// GenerateAccessToken creates a signed access token for the user.
	GenerateAccessToken(userID uuid.UUID) (string, error)

	// GenerateRefreshToken creates a signed refresh token for the user.
	GenerateRefreshToken(userID uuid.UUID) (string, error)

	// ValidateAccessToken verifies an access token and returns its subject.
	// Failures are reported as *TokenError.
	ValidateAccessToken(tokenString string) (uuid.UUID, error)

	// ValidateRefreshToken verifies a refresh token and returns its subject.
	// Failures are reported as *TokenError.
	ValidateRefreshToken(tokenString string) (uuid.UUID, error)

	// AccessTokenDuration returns the configured access token lifetime.
	AccessTokenDuration() time.Duration

	// RefreshTokenDuration returns the configured refresh token lifetime.
	RefreshTokenDuration() time.Duration
}
