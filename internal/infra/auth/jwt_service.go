// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"inkwell/config"
	"inkwell/internal/domain/service"
	"inkwell/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens share the same claim shape (sub, iat, exp) but are
// signed with independent secrets, so each token only validates against its
// own family.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.AccessSecret == "" || cfg.JWT.RefreshSecret == "" {
		return nil, errors.New("jwt secrets must be provided")
	}
	if cfg.JWT.ExpirationMinute <= 0 || cfg.JWT.RefreshExpirationMinute <= 0 {
		return nil, errors.New("jwt lifetimes must be positive")
	}

	return &jwtService{
		accessSecret:  cfg.JWT.AccessSecret,
		refreshSecret: cfg.JWT.RefreshSecret,
		accessTTL:     time.Duration(cfg.JWT.ExpirationMinute) * time.Minute,
		refreshTTL:    time.Duration(cfg.JWT.RefreshExpirationMinute) * time.Minute,
	}, nil
}

// GenerateAccessToken creates a signed access token for the user.
func (s *jwtService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, s.accessTTL, s.accessSecret)
}

// GenerateRefreshToken creates a signed refresh token for the user.
func (s *jwtService) GenerateRefreshToken(userID uuid.UUID) (string, error) {
	return s.generateToken(userID, s.refreshTTL, s.refreshSecret)
}

// ValidateAccessToken verifies an access token and returns its subject.
func (s *jwtService) ValidateAccessToken(tokenString string) (uuid.UUID, error) {
	return s.validateToken(tokenString, s.accessSecret)
}

// ValidateRefreshToken verifies a refresh token and returns its subject.
func (s *jwtService) ValidateRefreshToken(tokenString string) (uuid.UUID, error) {
	return s.validateToken(tokenString, s.refreshSecret)
}

// AccessTokenDuration returns the configured access token lifetime.
func (s *jwtService) AccessTokenDuration() time.Duration {
	return s.accessTTL
}

// RefreshTokenDuration returns the configured refresh token lifetime.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID.String(),     // Subject (who the token is for)
		"iat": now.Unix(),          // Issued At
		"exp": now.Add(ttl).Unix(), // Expiration Time
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// validateToken parses and verifies a token string against a secret, then
// extracts the subject. Failures come back as *service.TokenError so the
// transport layer can distinguish expired from malformed from invalid.
func (s *jwtService) validateToken(tokenString, secret string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, &service.TokenError{Kind: classifyParseError(err), Err: err}
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, &service.TokenError{Kind: service.TokenErrorInvalid, Err: err}
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, &service.TokenError{Kind: service.TokenErrorInvalid, Err: errors.Wrap(err, "parse subject")}
	}

	return userID, nil
}

func classifyParseError(err error) service.TokenErrorKind {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.TokenErrorExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return service.TokenErrorMalformed
	default:
		return service.TokenErrorInvalid
	}
}
