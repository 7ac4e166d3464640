package postgres

import (
	"context"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// appRepository implements the domain's AppRepository interface using GORM.
type appRepository struct {
	db *gorm.DB
}

// NewAppRepository is the constructor for appRepository.
func NewAppRepository(db *gorm.DB) repository.AppRepository {
	return &appRepository{db: db}
}

// FindByID retrieves a catalog app by its unique ID.
func (repo *appRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.App, error) {
	var appM model.AppModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&appM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppNotFound
		}

		return nil, errors.Wrap(err, "failed to find app by id")
	}

	return toAppDomain(&appM), nil
}

// FindBySlug retrieves a catalog app by its slug.
func (repo *appRepository) FindBySlug(ctx context.Context, slug string) (*entity.App, error) {
	var appM model.AppModel
	if err := repo.db.WithContext(ctx).Where("slug = ?", slug).First(&appM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAppNotFound
		}

		return nil, errors.Wrap(err, "failed to find app by slug")
	}

	return toAppDomain(&appM), nil
}

// List retrieves catalog apps, optionally restricted to active ones.
func (repo *appRepository) List(ctx context.Context, activeOnly bool) ([]*entity.App, error) {
	query := repo.db.WithContext(ctx).Order("name ASC")
	if activeOnly {
		query = query.Where("is_active = true")
	}

	var models []model.AppModel
	if err := query.Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list apps")
	}

	apps := make([]*entity.App, 0, len(models))
	for i := range models {
		apps = append(apps, toAppDomain(&models[i]))
	}

	return apps, nil
}

// Create persists a new catalog app.
func (repo *appRepository) Create(ctx context.Context, app *entity.App) error {
	appM := fromAppDomain(app)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("app slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create app")
	}

	app.ID = appM.ID
	app.CreatedAt = appM.CreatedAt
	app.UpdatedAt = appM.UpdatedAt

	return nil
}

// Update modifies an existing catalog app.
func (repo *appRepository) Update(ctx context.Context, app *entity.App) error {
	appM := fromAppDomain(app)

	if err := repo.db.WithContext(ctx).Save(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("app slug already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update app")
	}

	app.UpdatedAt = appM.UpdatedAt

	return nil
}

// Delete removes a catalog app by its unique ID.
func (repo *appRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.AppModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete app")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAppNotFound
	}

	return nil
}

// toAppDomain converts a GORM AppModel to a domain App entity.
func toAppDomain(data *model.AppModel) *entity.App {
	if data == nil {
		return nil
	}

	return &entity.App{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Image:       data.Image,
		Description: data.Description,
		URL:         data.URL,
		IsActive:    data.IsActive,
		Features:    data.Features,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromAppDomain converts a domain App entity to a GORM AppModel.
func fromAppDomain(data *entity.App) *model.AppModel {
	if data == nil {
		return nil
	}

	return &model.AppModel{
		ID:          data.ID,
		Name:        data.Name,
		Slug:        data.Slug,
		Image:       data.Image,
		Description: data.Description,
		URL:         data.URL,
		IsActive:    data.IsActive,
		Features:    data.Features,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
