package usecase

import (
	"context"
	"time"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateAPITokenInput defines a new metered API token.
type CreateAPITokenInput struct {
	Name      string
	Quota     int
	ExpiredAt time.Time
	Note      string
}

// UpdateAPITokenInput carries the mutable fields of an API token. Nil
// pointer fields leave the current value untouched.
type UpdateAPITokenInput struct {
	Name      *string
	Quota     *int
	IsActive  *bool
	ExpiredAt *time.Time
	Note      *string
}

// TokenAppsUsecase manages the quota-metered API tokens handed to
// third-party apps, and gates the endpoints those apps call.
type TokenAppsUsecase interface {
	// Validate reports whether the token string authorizes a call right
	// now: known, active, unexpired and under quota. It never errors; an
	// unknown token is simply not valid.
	Validate(ctx context.Context, token string) bool

	// Consume validates the token and burns one unit of quota atomically.
	// An unusable token fails with the gate's invalid-token error; a token
	// that loses the quota race fails with the exhausted error.
	Consume(ctx context.Context, token string) error

	// Create mints a new token with a generated bearer string.
	Create(ctx context.Context, input *CreateAPITokenInput) (*entity.APIToken, error)

	// Get returns one token record by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.APIToken, error)

	// List returns all token records.
	List(ctx context.Context) ([]*entity.APIToken, error)

	// Update modifies a token record.
	Update(ctx context.Context, id uuid.UUID, input *UpdateAPITokenInput) (*entity.APIToken, error)

	// Delete removes a token record.
	Delete(ctx context.Context, id uuid.UUID) error
}
