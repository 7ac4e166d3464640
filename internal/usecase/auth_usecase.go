// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new identity. Roles,
// status and the verified flag are caller-provided and stored as given.
type RegisterInput struct {
	UserName        string
	Email           string
	Password        string
	ConfirmPassword string
	Roles           []string
	Status          string
	IsVerified      bool
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries the refresh token presented for rotation.
type RefreshInput struct {
	RefreshToken string
}

// ForgotPasswordInput carries the email of the account asking for a reset.
type ForgotPasswordInput struct {
	Email string
}

// --- Output DTOs ---

// TokenOutput is the issued token pair as returned to the client.
type TokenOutput struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	LoginAt      time.Time
}

// AuthOutput is the login-shaped response: the user projection plus the
// freshly issued token pair.
type AuthOutput struct {
	User  *entity.PublicProjection
	Token *TokenOutput
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a new identity. No tokens are issued.
	Register(ctx context.Context, input *RegisterInput) (*entity.PublicProjection, error)

	// Login verifies credentials, issues a token pair and stores it,
	// replacing any pair the user held before.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// Refresh rotates the token pair. The presented refresh token must be
	// the one currently stored for its subject; a superseded token is
	// rejected even when its signature is still valid.
	Refresh(ctx context.Context, input *RefreshInput) (*AuthOutput, error)

	// Logout discards the user's stored token pair.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ForgotPassword verifies the account exists. Mail delivery is handled
	// elsewhere; the call succeeds once the email is known.
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error
}
