package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for API token persistence.
var (
	// ErrAPITokenNotFound is returned when no API token matches the lookup.
	ErrAPITokenNotFound = errors.New("api token not found")
	// ErrAPITokenQuotaExceeded is returned when a conditional usage increment
	// matched no row, meaning the quota was exhausted concurrently.
	ErrAPITokenQuotaExceeded = errors.New("api token quota exceeded")
)

// APITokenRepository manages issued API tokens and their usage counters.
type APITokenRepository interface {
	// FindByToken retrieves an API token record by its token string.
	FindByToken(ctx context.Context, token string) (*entity.APIToken, error)

	// FindByID retrieves an API token record by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.APIToken, error)

	// List retrieves all API token records.
	List(ctx context.Context) ([]*entity.APIToken, error)

	// Create persists a new API token record.
	Create(ctx context.Context, token *entity.APIToken) error

	// Update modifies an existing API token record.
	Update(ctx context.Context, token *entity.APIToken) error

	// Delete removes an API token record by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error

	// IncrementUsage bumps the usage counter by one, but only while the
	// counter is still below the quota. It returns ErrAPITokenQuotaExceeded
	// when the guarded update matches no row, so concurrent callers cannot
	// push usage past the quota.
	IncrementUsage(ctx context.Context, id uuid.UUID) error
}
