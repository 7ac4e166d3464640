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

// apiTokenRepository implements the domain's APITokenRepository interface using GORM.
type apiTokenRepository struct {
	db *gorm.DB
}

// NewAPITokenRepository is the constructor for apiTokenRepository.
func NewAPITokenRepository(db *gorm.DB) repository.APITokenRepository {
	return &apiTokenRepository{db: db}
}

// FindByToken retrieves an API token record by its token string.
func (repo *apiTokenRepository) FindByToken(ctx context.Context, token string) (*entity.APIToken, error) {
	var tokenM model.APITokenModel
	if err := repo.db.WithContext(ctx).Where("token = ?", token).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAPITokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find api token by token")
	}

	return toAPITokenDomain(&tokenM), nil
}

// FindByID retrieves an API token record by its unique ID.
func (repo *apiTokenRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.APIToken, error) {
	var tokenM model.APITokenModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAPITokenNotFound
		}

		return nil, errors.Wrap(err, "failed to find api token by id")
	}

	return toAPITokenDomain(&tokenM), nil
}

// List retrieves all API token records.
func (repo *apiTokenRepository) List(ctx context.Context) ([]*entity.APIToken, error) {
	var models []model.APITokenModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list api tokens")
	}

	tokens := make([]*entity.APIToken, 0, len(models))
	for i := range models {
		tokens = append(tokens, toAPITokenDomain(&models[i]))
	}

	return tokens, nil
}

// Create persists a new API token record.
func (repo *apiTokenRepository) Create(ctx context.Context, token *entity.APIToken) error {
	tokenM := fromAPITokenDomain(token)

	if err := repo.db.WithContext(ctx).Create(tokenM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrConflict.WrapMessage("api token already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create api token")
	}

	token.ID = tokenM.ID
	token.CreatedAt = tokenM.CreatedAt
	token.UpdatedAt = tokenM.UpdatedAt

	return nil
}

// Update modifies an existing API token record.
func (repo *apiTokenRepository) Update(ctx context.Context, token *entity.APIToken) error {
	tokenM := fromAPITokenDomain(token)

	if err := repo.db.WithContext(ctx).Save(tokenM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update api token")
	}

	token.UpdatedAt = tokenM.UpdatedAt

	return nil
}

// Delete removes an API token record by its unique ID.
func (repo *apiTokenRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.APITokenModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete api token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAPITokenNotFound
	}

	return nil
}

// IncrementUsage bumps the usage counter by one with a guarded update. The
// WHERE clause re-checks active/unexpired/under-quota inside the statement,
// so two concurrent increments can never push usage past the quota, and a
// token revoked or expired between validation and metering is not charged.
// Updates (not UpdateColumn) so the row's updated_at is refreshed too.
func (repo *apiTokenRepository) IncrementUsage(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Model(&model.APITokenModel{}).
		Where("id = ? AND is_active = ? AND expired_at > ? AND usage_count < quota", id, true, time.Now()).
		Updates(map[string]any{"usage_count": gorm.Expr("usage_count + 1")})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to increment api token usage")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAPITokenQuotaExceeded
	}

	return nil
}

// toAPITokenDomain converts a GORM APITokenModel to a domain APIToken entity.
func toAPITokenDomain(data *model.APITokenModel) *entity.APIToken {
	if data == nil {
		return nil
	}

	return &entity.APIToken{
		ID:         data.ID,
		Name:       data.Name,
		Token:      data.Token,
		Quota:      data.Quota,
		UsageCount: data.UsageCount,
		IsActive:   data.IsActive,
		ExpiredAt:  data.ExpiredAt,
		Note:       data.Note,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromAPITokenDomain converts a domain APIToken entity to a GORM APITokenModel.
func fromAPITokenDomain(data *entity.APIToken) *model.APITokenModel {
	if data == nil {
		return nil
	}

	return &model.APITokenModel{
		ID:         data.ID,
		Name:       data.Name,
		Token:      data.Token,
		Quota:      data.Quota,
		UsageCount: data.UsageCount,
		IsActive:   data.IsActive,
		ExpiredAt:  data.ExpiredAt,
		Note:       data.Note,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
