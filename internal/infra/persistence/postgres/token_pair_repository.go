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
	"gorm.io/gorm/clause"
)

// tokenPairRepository implements the domain's TokenPairRepository interface using GORM.
type tokenPairRepository struct {
	db *gorm.DB
}

// NewTokenPairRepository is the constructor for tokenPairRepository.
func NewTokenPairRepository(db *gorm.DB) repository.TokenPairRepository {
	return &tokenPairRepository{db: db}
}

// FindByUserID retrieves the current token pair for a user.
func (repo *tokenPairRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.TokenPair, error) {
	var tokenM model.TokenModel
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).First(&tokenM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenPairNotFound
		}

		return nil, errors.Wrap(err, "failed to find token pair by user id")
	}

	return toTokenPairDomain(&tokenM), nil
}

// FindByUserAndRefreshToken retrieves the token pair matching both the user
// and the exact refresh token string. A miss means the presented refresh
// token has been rotated out or never existed.
func (repo *tokenPairRepository) FindByUserAndRefreshToken(ctx context.Context, userID uuid.UUID, refreshToken string) (*entity.TokenPair, error) {
	var tokenM model.TokenModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND refresh_token = ?", userID, refreshToken).
		First(&tokenM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTokenPairNotFound
		}

		return nil, errors.Wrap(err, "failed to find token pair by user and refresh token")
	}

	return toTokenPairDomain(&tokenM), nil
}

// Upsert stores the token pair, replacing any existing row for the same user.
func (repo *tokenPairRepository) Upsert(ctx context.Context, pair *entity.TokenPair) error {
	tokenM := fromTokenPairDomain(pair)

	err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"access_token", "refresh_token", "token_type", "login_at", "updated_at",
			}),
		}).
		Create(tokenM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert token pair")
	}

	pair.ID = tokenM.ID
	pair.CreatedAt = tokenM.CreatedAt
	pair.UpdatedAt = tokenM.UpdatedAt

	return nil
}

// DeleteByUserID removes the token pair for a user, ending their session.
func (repo *tokenPairRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.TokenModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete token pair")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTokenPairNotFound
	}

	return nil
}

// toTokenPairDomain converts a GORM TokenModel to a domain TokenPair entity.
func toTokenPairDomain(data *model.TokenModel) *entity.TokenPair {
	if data == nil {
		return nil
	}

	return &entity.TokenPair{
		ID:           data.ID,
		UserID:       data.UserID,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		TokenType:    data.TokenType,
		LoginAt:      data.LoginAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}

// fromTokenPairDomain converts a domain TokenPair entity to a GORM TokenModel.
func fromTokenPairDomain(data *entity.TokenPair) *model.TokenModel {
	if data == nil {
		return nil
	}

	return &model.TokenModel{
		ID:           data.ID,
		UserID:       data.UserID,
		AccessToken:  data.AccessToken,
		RefreshToken: data.RefreshToken,
		TokenType:    data.TokenType,
		LoginAt:      data.LoginAt,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
	}
}
