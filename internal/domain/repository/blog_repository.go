package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrBlogNotFound is returned when no blog matches the lookup.
var ErrBlogNotFound = errors.New("blog not found")

// BlogRepository defines persistence operations for blog posts.
// Deletion is always soft: deleted rows keep their data but are excluded
// from every lookup.
type BlogRepository interface {
	// FindByID retrieves a single non-deleted blog by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)

	// FindBySlug retrieves a single non-deleted blog by its slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Blog, error)

	// Search retrieves a page of non-deleted blogs matching the filter.
	Search(ctx context.Context, filter entity.BlogFilter) (*entity.BlogPage, error)

	// ListByAuthor retrieves all non-deleted blogs written by a user.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Blog, error)

	// Create persists a new blog.
	Create(ctx context.Context, blog *entity.Blog) error

	// Update modifies an existing blog.
	Update(ctx context.Context, blog *entity.Blog) error

	// SoftDelete marks a blog as deleted without removing the row.
	SoftDelete(ctx context.Context, id uuid.UUID) error

	// FindDeletedByID retrieves a soft-deleted blog by its unique ID.
	FindDeletedByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)

	// Restore clears the deleted mark on a soft-deleted blog.
	Restore(ctx context.Context, id uuid.UUID) error

	// HardDelete removes the row entirely, deleted or not.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// IncrementViewCount bumps the view counter by one.
	IncrementViewCount(ctx context.Context, id uuid.UUID) error
}
