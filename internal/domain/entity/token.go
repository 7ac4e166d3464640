// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// TokenTypeBearer is the only token type the platform issues.
const TokenTypeBearer = "Bearer"

// TokenPair is the persisted record of the most recently issued access and
// refresh tokens for a user. At most one record exists per user: every login
// or refresh overwrites it in place (rotation), which is what invalidates
// lookup-based reuse of the superseded pair.
type TokenPair struct {
	ID           uuid.UUID // The unique ID for this record.
	UserID       uuid.UUID // The user this pair belongs to.
	AccessToken  string    // The raw signed access token.
	RefreshToken string    // The raw signed refresh token.
	TokenType    string    // Always "Bearer".
	LoginAt      time.Time // When this pair was issued.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
