package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// CreateBlogInput defines a new blog post. An empty slug is derived from
// the title.
type CreateBlogInput struct {
	Title           string
	Slug            string
	Excerpt         string
	Content         string
	CoverImage      string
	MetaTitle       string
	MetaDescription string
	Categories      []string
	Tags            []string
	Published       bool
}

// UpdateBlogInput carries the mutable fields of a blog post. Nil pointer
// fields leave the current value untouched.
type UpdateBlogInput struct {
	Title           *string
	Slug            *string
	Excerpt         *string
	Content         *string
	CoverImage      *string
	MetaTitle       *string
	MetaDescription *string
	Categories      []string
	Tags            []string
	IsActive        *bool
}

// BlogUsecase defines blog authoring and reading operations. Writes are
// restricted to the post's author.
type BlogUsecase interface {
	// Create persists a new post owned by the author. Publishing at
	// creation time emits a published event.
	Create(ctx context.Context, authorID uuid.UUID, input *CreateBlogInput) (*entity.Blog, error)

	// Update modifies an existing post owned by the author.
	Update(ctx context.Context, authorID, blogID uuid.UUID, input *UpdateBlogInput) (*entity.Blog, error)

	// Delete soft-deletes a post owned by the author.
	Delete(ctx context.Context, authorID, blogID uuid.UUID) error

	// Restore brings back a soft-deleted post owned by the author.
	Restore(ctx context.Context, authorID, blogID uuid.UUID) (*entity.Blog, error)

	// HardDelete removes a post owned by the author for good.
	HardDelete(ctx context.Context, authorID, blogID uuid.UUID) error

	// SetPublished toggles the published flag. Transitioning to published
	// emits a published event.
	SetPublished(ctx context.Context, authorID, blogID uuid.UUID, published bool) (*entity.Blog, error)

	// GetByID returns one post by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)

	// GetBySlug returns one post by slug.
	GetBySlug(ctx context.Context, slug string) (*entity.Blog, error)

	// Search returns a page of posts matching the filter. Public callers
	// only see published, active posts.
	Search(ctx context.Context, filter entity.BlogFilter) (*entity.BlogPage, error)

	// ListMine returns all posts written by the author, drafts included.
	ListMine(ctx context.Context, authorID uuid.UUID) ([]*entity.Blog, error)

	// RecordView bumps the view counter of the post behind the slug.
	RecordView(ctx context.Context, slug string) error
}
