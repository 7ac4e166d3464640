package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTokenPairNotFound is returned when no stored token pair matches the lookup.
var ErrTokenPairNotFound = errors.New("token pair not found")

// TokenPairRepository manages the persisted session rows. Each user holds at
// most one row; issuing new tokens replaces the previous pair, which is what
// makes a superseded refresh token unusable.
type TokenPairRepository interface {
	// FindByUserID retrieves the current token pair for a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error)

	// FindByUserAndRefreshToken retrieves the token pair matching both the
	// user and the exact refresh token string. A miss means the presented
	// refresh token has been rotated out or never existed.
	FindByUserAndRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) (*entity.TokenPair, error)

	// Upsert stores the token pair, replacing any existing row for the same user.
	Upsert(ctx context.Context, pair *entity.TokenPair) error

	// DeleteByUserID removes the token pair for a user, ending their session.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
