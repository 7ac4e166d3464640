package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SaveAppInput defines a catalog entry. An empty slug is derived from the name.
type SaveAppInput struct {
	Name        string
	Slug        string
	Image       string
	Description string
	URL         string
	IsActive    bool
	Features    []string
}

// AppUsecase manages the application catalog shown on the landing page.
type AppUsecase interface {
	// Create adds a catalog entry.
	Create(ctx context.Context, input *SaveAppInput) (*entity.App, error)

	// Update replaces a catalog entry's fields.
	Update(ctx context.Context, id uuid.UUID, input *SaveAppInput) (*entity.App, error)

	// Get returns one entry by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.App, error)

	// GetBySlug returns one entry by slug.
	GetBySlug(ctx context.Context, slug string) (*entity.App, error)

	// List returns catalog entries, optionally active ones only.
	List(ctx context.Context, activeOnly bool) ([]*entity.App, error)

	// Delete removes a catalog entry.
	Delete(ctx context.Context, id uuid.UUID) error
}
