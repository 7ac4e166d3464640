package postgres

import (
	"context"
	"time"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const defaultBlogPageSize = 10

// blogRepository implements the domain's BlogRepository interface using GORM.
type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository is the constructor for blogRepository.
func NewBlogRepository(db *gorm.DB) repository.BlogRepository {
	return &blogRepository{db: db}
}

// notDeleted scopes a query to rows that have not been soft deleted.
func notDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}

// FindByID retrieves a single non-deleted blog by its unique ID.
func (repo *blogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	var blogM model.BlogModel
	err := repo.db.WithContext(ctx).Scopes(notDeleted).Where("id = ?", id).First(&blogM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogNotFound
		}

		return nil, errors.Wrap(err, "failed to find blog by id")
	}

	return toBlogDomain(&blogM), nil
}

// FindBySlug retrieves a single non-deleted blog by its slug.
func (repo *blogRepository) FindBySlug(ctx context.Context, slug string) (*entity.Blog, error) {
	var blogM model.BlogModel
	err := repo.db.WithContext(ctx).Scopes(notDeleted).Where("slug = ?", slug).First(&blogM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogNotFound
		}

		return nil, errors.Wrap(err, "failed to find blog by slug")
	}

	return toBlogDomain(&blogM), nil
}

// Search retrieves a page of non-deleted blogs matching the filter.
func (repo *blogRepository) Search(ctx context.Context, filter entity.BlogFilter) (*entity.BlogPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.Size
	if size < 1 {
		size = defaultBlogPageSize
	}

	query := repo.db.WithContext(ctx).Model(&model.BlogModel{}).Scopes(notDeleted)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR excerpt ILIKE ? OR content ILIKE ?", pattern, pattern, pattern)
	}
	if filter.Published != nil {
		query = query.Where("published = ?", *filter.Published)
	}
	if filter.Active != nil {
		query = query.Where("is_active = ?", *filter.Active)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, errors.Wrap(err, "failed to count blogs")
	}

	var models []model.BlogModel
	err := query.
		Order("created_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search blogs")
	}

	items := make([]*entity.Blog, 0, len(models))
	for i := range models {
		items = append(items, toBlogDomain(&models[i]))
	}

	totalPages := int(total) / size
	if int(total)%size != 0 {
		totalPages++
	}

	return &entity.BlogPage{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

// ListByAuthor retrieves all non-deleted blogs written by a user.
func (repo *blogRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Blog, error) {
	var models []model.BlogModel
	err := repo.db.WithContext(ctx).
		Scopes(notDeleted).
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list blogs by author")
	}

	blogs := make([]*entity.Blog, 0, len(models))
	for i := range models {
		blogs = append(blogs, toBlogDomain(&models[i]))
	}

	return blogs, nil
}

// Create persists a new blog.
func (repo *blogRepository) Create(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)

	if err := repo.db.WithContext(ctx).Create(blogM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("blog slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create blog")
	}

	blog.ID = blogM.ID
	blog.CreatedAt = blogM.CreatedAt
	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

// Update modifies an existing blog.
func (repo *blogRepository) Update(ctx context.Context, blog *entity.Blog) error {
	blogM := fromBlogDomain(blog)

	if err := repo.db.WithContext(ctx).Save(blogM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("blog slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update blog")
	}

	blog.UpdatedAt = blogM.UpdatedAt

	return nil
}

// SoftDelete marks a blog as deleted without removing the row.
func (repo *blogRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BlogModel{}).
		Scopes(notDeleted).
		Where("id = ?", id).
		UpdateColumn("deleted_at", time.Now())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to soft delete blog")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	return nil
}

// FindDeletedByID retrieves a soft-deleted blog by its unique ID.
func (repo *blogRepository) FindDeletedByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error) {
	var blogM model.BlogModel
	err := repo.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&blogM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBlogNotFound
		}

		return nil, errors.Wrap(err, "failed to find deleted blog by id")
	}

	return toBlogDomain(&blogM), nil
}

// Restore clears the deleted mark on a soft-deleted blog.
func (repo *blogRepository) Restore(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BlogModel{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		UpdateColumn("deleted_at", nil)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to restore blog")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	return nil
}

// HardDelete removes the row entirely, deleted or not.
func (repo *blogRepository) HardDelete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.BlogModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to hard delete blog")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	return nil
}

// IncrementViewCount bumps the view counter by one.
func (repo *blogRepository) IncrementViewCount(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BlogModel{}).
		Scopes(notDeleted).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment blog views")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBlogNotFound
	}

	return nil
}

// toBlogDomain converts a GORM BlogModel to a domain Blog entity.
func toBlogDomain(data *model.BlogModel) *entity.Blog {
	if data == nil {
		return nil
	}

	return &entity.Blog{
		ID:              data.ID,
		AuthorID:        data.AuthorID,
		Title:           data.Title,
		Slug:            data.Slug,
		Excerpt:         data.Excerpt,
		Content:         data.Content,
		CoverImage:      data.CoverImage,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		Categories:      data.Categories,
		Tags:            data.Tags,
		Published:       data.Published,
		IsActive:        data.IsActive,
		ViewCount:       data.ViewCount,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		DeletedAt:       data.DeletedAt,
	}
}

// fromBlogDomain converts a domain Blog entity to a GORM BlogModel.
func fromBlogDomain(data *entity.Blog) *model.BlogModel {
	if data == nil {
		return nil
	}

	return &model.BlogModel{
		ID:              data.ID,
		AuthorID:        data.AuthorID,
		Title:           data.Title,
		Slug:            data.Slug,
		Excerpt:         data.Excerpt,
		Content:         data.Content,
		CoverImage:      data.CoverImage,
		MetaTitle:       data.MetaTitle,
		MetaDescription: data.MetaDescription,
		Categories:      data.Categories,
		Tags:            data.Tags,
		Published:       data.Published,
		IsActive:        data.IsActive,
		ViewCount:       data.ViewCount,
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
		DeletedAt:       data.DeletedAt,
	}
}
