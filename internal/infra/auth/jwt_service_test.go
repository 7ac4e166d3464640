package auth

import (
	"testing"
	"time"

	"inkwell/config"
	"inkwell/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT = &config.JWTConfig{
		AccessSecret:            "test_access_secret_key_very_long_for_testing",
		RefreshSecret:           "test_refresh_secret_key_very_long_for_testing",
		ExpirationMinute:        15,
		RefreshExpirationMinute: 60 * 24 * 7,
	}

	return cfg
}

func TestJWTService_GenerateAndValidateTokens(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)
	require.NotNil(t, jwtService)

	userID := uuid.New()

	accessToken, err := jwtService.GenerateAccessToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, accessToken)

	refreshToken, err := jwtService.GenerateRefreshToken(userID)
	assert.NoError(t, err)
	assert.NotEmpty(t, refreshToken)

	// Each token validates against its own family and carries the user as subject.
	accessSubject, err := jwtService.ValidateAccessToken(accessToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, accessSubject)

	refreshSubject, err := jwtService.ValidateRefreshToken(refreshToken)
	assert.NoError(t, err)
	assert.Equal(t, userID, refreshSubject)
}

func TestJWTService_CrossFamilyValidationFails(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	userID := uuid.New()

	accessToken, err := jwtService.GenerateAccessToken(userID)
	require.NoError(t, err)

	refreshToken, err := jwtService.GenerateRefreshToken(userID)
	require.NoError(t, err)

	// An access token must not pass refresh validation, and vice versa.
	_, err = jwtService.ValidateRefreshToken(accessToken)
	assert.Error(t, err)

	_, err = jwtService.ValidateAccessToken(refreshToken)
	assert.Error(t, err)

	var tokenErr *service.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, service.TokenErrorInvalid, tokenErr.Kind)
}

func TestJWTService_MalformedToken(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	_, err = jwtService.ValidateAccessToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)

	var tokenErr *service.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, service.TokenErrorMalformed, tokenErr.Kind)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	tokenService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	// Force an already-expired access token by shrinking the TTL.
	svc, ok := tokenService.(*jwtService)
	require.True(t, ok)
	svc.accessTTL = -time.Minute

	token, err := tokenService.GenerateAccessToken(uuid.New())
	require.NoError(t, err)

	_, err = tokenService.ValidateAccessToken(token)
	assert.Error(t, err)

	var tokenErr *service.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, service.TokenErrorExpired, tokenErr.Kind)
}

func TestJWTService_ExpiryEqualToNowIsExpired(t *testing.T) {
	cfg := testJWTConfig()
	tokenService, err := NewJWTService(cfg)
	require.NoError(t, err)

	// Hand-craft a token whose exp is exactly now. With zero leeway the
	// boundary instant counts as expired, not valid.
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": uuid.New().String(),
		"iat": now.Add(-time.Minute).Unix(),
		"exp": now.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.JWT.AccessSecret))
	require.NoError(t, err)

	_, err = tokenService.ValidateAccessToken(token)
	assert.Error(t, err)

	var tokenErr *service.TokenError
	assert.ErrorAs(t, err, &tokenErr)
	assert.Equal(t, service.TokenErrorExpired, tokenErr.Kind)
}

func TestJWTService_EmptySecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.JWT = &config.JWTConfig{
		ExpirationMinute:        15,
		RefreshExpirationMinute: 30,
	}

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
	assert.Contains(t, err.Error(), "jwt secrets must be provided")
}

func TestJWTService_NonPositiveLifetimes(t *testing.T) {
	cfg := testJWTConfig()
	cfg.JWT.ExpirationMinute = 0

	jwtService, err := NewJWTService(cfg)
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}

func TestJWTService_Durations(t *testing.T) {
	jwtService, err := NewJWTService(testJWTConfig())
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, jwtService.AccessTokenDuration())
	assert.Equal(t, time.Hour*24*7, jwtService.RefreshTokenDuration())
}
