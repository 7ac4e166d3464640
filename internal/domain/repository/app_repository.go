package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAppNotFound is returned when no catalog app matches the lookup.
var ErrAppNotFound = errors.New("app not found")

// AppRepository defines persistence operations for the application catalog.
type AppRepository interface {
	// FindByID retrieves a catalog app by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.App, error)

	// FindBySlug retrieves a catalog app by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.App, error)

	// List retrieves catalog apps. When activeOnly is true, inactive apps
	// are excluded.
	List(ctx context.Context, activeOnly bool) ([]*entity.App, error)

	// Create persists a new catalog app.
	Create(ctx context.Context, app *entity.App) error

	// Update modifies an existing catalog app.
	Update(ctx context.Context, app *entity.App) error

	// Delete removes a catalog app by its unique ID.
	Delete(ctx context.Context, id uuid.UUID) error
}
