package impl

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	deliverycontext "inkwell/internal/delivery/context"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// blogService implements the BlogUsecase interface.
type blogService struct {
	txManager repository.TransactionManager
	blogRepo  repository.BlogRepository
	publisher service.EventPublisher
	logger    *slog.Logger
}

// BlogServiceParams holds dependencies for BlogService, injected by Fx.
type BlogServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	BlogRepo  repository.BlogRepository
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(params BlogServiceParams) usecase.BlogUsecase {
	return &blogService{
		txManager: params.TxManager,
		blogRepo:  params.BlogRepo,
		publisher: params.Publisher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *blogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create persists a new post owned by the author. A missing slug is derived
// from the title and made unique before the insert.
func (srv *blogService) Create(ctx context.Context, authorID uuid.UUID, input *usecase.CreateBlogInput) (*entity.Blog, error) {
	srv.log(ctx).Info("Creating blog", slog.Any("authorID", authorID), slog.String("title", input.Title))

	var created *entity.Blog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		slug, err := srv.uniqueSlug(ctx, blogRepo, input.Slug, input.Title, uuid.Nil)
		if err != nil {
			return err
		}

		blog := &entity.Blog{
			AuthorID:        authorID,
			Title:           input.Title,
			Slug:            slug,
			Excerpt:         input.Excerpt,
			Content:         input.Content,
			CoverImage:      input.CoverImage,
			Published:       input.Published,
			MetaTitle:       input.MetaTitle,
			MetaDescription: input.MetaDescription,
			IsActive:        true,
			Categories:      input.Categories,
			Tags:            input.Tags,
		}

		if err := blogRepo.Create(ctx, blog); err != nil {
			return errors.Wrap(err, "failed to create blog")
		}

		created = blog

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute blog create transaction")
	}

	if created.Published {
		srv.publishBlogEvent(ctx, created)
	}

	return created, nil
}

// Update modifies a post owned by the author. Nil input fields keep their
// current values; a new slug is re-uniqued against other posts.
func (srv *blogService) Update(ctx context.Context, authorID, blogID uuid.UUID, input *usecase.UpdateBlogInput) (*entity.Blog, error) {
	var updated *entity.Blog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		blog, err := srv.ownedBlog(ctx, blogRepo, authorID, blogID)
		if err != nil {
			return err
		}

		if input.Title != nil {
			blog.Title = *input.Title
		}
		if input.Slug != nil && *input.Slug != blog.Slug {
			slug, err := srv.uniqueSlug(ctx, blogRepo, *input.Slug, blog.Title, blog.ID)
			if err != nil {
				return err
			}
			blog.Slug = slug
		}
		if input.Excerpt != nil {
			blog.Excerpt = *input.Excerpt
		}
		if input.Content != nil {
			blog.Content = *input.Content
		}
		if input.CoverImage != nil {
			blog.CoverImage = *input.CoverImage
		}
		if input.MetaTitle != nil {
			blog.MetaTitle = *input.MetaTitle
		}
		if input.MetaDescription != nil {
			blog.MetaDescription = *input.MetaDescription
		}
		if input.Categories != nil {
			blog.Categories = input.Categories
		}
		if input.Tags != nil {
			blog.Tags = input.Tags
		}
		if input.IsActive != nil {
			blog.IsActive = *input.IsActive
		}

		if err := blogRepo.Update(ctx, blog); err != nil {
			return errors.Wrap(err, "failed to update blog")
		}

		updated = blog

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute blog update transaction")
	}

	return updated, nil
}

// Delete soft-deletes a post owned by the author.
func (srv *blogService) Delete(ctx context.Context, authorID, blogID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		if _, err := srv.ownedBlog(ctx, blogRepo, authorID, blogID); err != nil {
			return err
		}

		if err := blogRepo.SoftDelete(ctx, blogID); err != nil {
			return errors.Wrap(err, "failed to soft delete blog")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute blog delete transaction")
	}

	srv.log(ctx).Info("Blog soft-deleted", slog.Any("blogID", blogID))

	return nil
}

// Restore brings back a soft-deleted post owned by the author.
func (srv *blogService) Restore(ctx context.Context, authorID, blogID uuid.UUID) (*entity.Blog, error) {
	var restored *entity.Blog
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		blog, err := blogRepo.FindDeletedByID(ctx, blogID)
		if errors.Is(err, repository.ErrBlogNotFound) {
			return errors.Wrap(domainerrors.ErrBlogNotFound, "deleted blog lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find deleted blog by id")
		}

		if blog.AuthorID != authorID {
			return errors.Wrap(domainerrors.ErrForbidden, "blog is owned by another user")
		}

		if err := blogRepo.Restore(ctx, blogID); err != nil {
			return errors.Wrap(err, "failed to restore blog")
		}

		blog.DeletedAt = nil
		restored = blog

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute blog restore transaction")
	}

	srv.log(ctx).Info("Blog restored", slog.Any("blogID", blogID))

	return restored, nil
}

// HardDelete removes a post owned by the author for good. Works on live and
// soft-deleted posts alike.
func (srv *blogService) HardDelete(ctx context.Context, authorID, blogID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		blog, err := blogRepo.FindByID(ctx, blogID)
		if errors.Is(err, repository.ErrBlogNotFound) {
			blog, err = blogRepo.FindDeletedByID(ctx, blogID)
		}
		if errors.Is(err, repository.ErrBlogNotFound) {
			return errors.Wrap(domainerrors.ErrBlogNotFound, "blog lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find blog by id")
		}

		if blog.AuthorID != authorID {
			return errors.Wrap(domainerrors.ErrForbidden, "blog is owned by another user")
		}

		if err := blogRepo.HardDelete(ctx, blogID); err != nil {
			return errors.Wrap(err, "failed to hard delete blog")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute blog hard delete transaction")
	}

	srv.log(ctx).Warn("Blog hard-deleted", slog.Any("blogID", blogID))

	return nil
}

// SetPublished toggles the published flag. Only the transition to published
// emits an event.
func (srv *blogService) SetPublished(ctx context.Context, authorID, blogID uuid.UUID, published bool) (*entity.Blog, error) {
	var updated *entity.Blog
	var becamePublished bool
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		blogRepo := repoFactory.NewBlogRepository()

		blog, err := srv.ownedBlog(ctx, blogRepo, authorID, blogID)
		if err != nil {
			return err
		}

		becamePublished = published && !blog.Published
		blog.Published = published

		if err := blogRepo.Update(ctx, blog); err != nil {
			return errors.Wrap(err, "failed to update blog published flag")
		}

		updated = blog

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute blog publish transaction")
	}

	if becamePublished {
		srv.publishBlogEvent(ctx, updated)
	}

	return updated, nil
}

// GetByID returns one post by ID.
func (srv *blogService) GetByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	blog, err := srv.blogRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrBlogNotFound) {
		return nil, errors.Wrap(domainerrors.ErrBlogNotFound, "blog lookup by id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	return blog, nil
}

// GetBySlug returns one post by slug.
func (srv *blogService) GetBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	blog, err := srv.blogRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrBlogNotFound) {
		return nil, errors.Wrap(domainerrors.ErrBlogNotFound, "blog lookup by slug")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find blog by slug")
	}

	return blog, nil
}

// Search returns a page of posts matching the filter.
func (srv *blogService) Search(ctx context.Context, filter entity.BlogFilter) (*entity.BlogPage, error) {
	page, err := srv.blogRepo.Search(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search blogs")
	}

	return page, nil
}

// ListMine returns all posts written by the author, drafts included.
func (srv *blogService) ListMine(ctx context.Context, authorID uuid.UUID) ([]*entity.Blog, error) {
	blogs, err := srv.blogRepo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs by author")
	}

	return blogs, nil
}

// RecordView bumps the view counter of the post behind the slug.
func (srv *blogService) RecordView(ctx context.Context, slug string) error {
	blog, err := srv.blogRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrBlogNotFound) {
		return errors.Wrap(domainerrors.ErrBlogNotFound, "blog lookup by slug")
	}
	if err != nil {
		return errors.Wrap(err, "failed to find blog by slug")
	}

	if err := srv.blogRepo.IncrementViewCount(ctx, blog.ID); err != nil {
		return errors.Wrap(err, "failed to increment view count")
	}

	return nil
}

// ownedBlog loads the post and checks that the caller wrote it.
func (srv *blogService) ownedBlog(ctx context.Context, blogRepo repository.BlogRepository, authorID, blogID uuid.UUID) (*entity.Blog, error) {
	blog, err := blogRepo.FindByID(ctx, blogID)
	if errors.Is(err, repository.ErrBlogNotFound) {
		return nil, errors.Wrap(domainerrors.ErrBlogNotFound, "blog lookup by id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	if blog.AuthorID != authorID {
		srv.log(ctx).Warn("Blog write rejected for non-author", slog.Any("blogID", blogID), slog.Any("userID", authorID))

		return nil, errors.Wrap(domainerrors.ErrForbidden, "blog is owned by another user")
	}

	return blog, nil
}

// uniqueSlug normalizes the requested slug (falling back to the title) and
// appends a numeric suffix until no other post claims it.
func (srv *blogService) uniqueSlug(ctx context.Context, blogRepo repository.BlogRepository, requested, title string, selfID uuid.UUID) (string, error) {
	base := normalizeSlug(requested)
	if base == "" {
		base = normalizeSlug(title)
	}
	if base == "" {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "slug cannot be derived from an empty title")
	}

	slug := base
	for attempt := 2; ; attempt++ {
		existing, err := blogRepo.FindBySlug(ctx, slug)
		if errors.Is(err, repository.ErrBlogNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", errors.Wrap(err, "failed to check slug uniqueness")
		}
		if existing.ID == selfID {
			return slug, nil
		}

		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
}

// publishBlogEvent emits the published event. Publish failures are logged
// and swallowed: the post itself is already committed.
func (srv *blogService) publishBlogEvent(ctx context.Context, blog *entity.Blog) {
	event := &service.BlogPublishedEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		BlogID:    blog.ID.String(),
		AuthorID:  blog.AuthorID.String(),
		Slug:      blog.Slug,
		Title:     blog.Title,
	}

	if err := srv.publisher.PublishBlogPublished(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish blog event", slog.Any("blogID", blog.ID), slog.Any("error", err))
	}
}

var slugSeparators = regexp.MustCompile(`[^a-z0-9]+`)

// normalizeSlug lowercases the input and collapses every non-alphanumeric
// run into a single hyphen.
func normalizeSlug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = slugSeparators.ReplaceAllString(s, "-")

	return strings.Trim(s, "-")
}
