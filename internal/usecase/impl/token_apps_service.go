package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "inkwell/internal/delivery/context"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenAppsService implements the TokenAppsUsecase interface.
type tokenAppsService struct {
	txManager    repository.TransactionManager
	apiTokenRepo repository.APITokenRepository
	logger       *slog.Logger
}

// TokenAppsServiceParams holds dependencies for TokenAppsService, injected by Fx.
type TokenAppsServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	APITokenRepo repository.APITokenRepository
	Logger       *slog.Logger
}

// NewTokenAppsService is the constructor for tokenAppsService.
func NewTokenAppsService(params TokenAppsServiceParams) usecase.TokenAppsUsecase {
	return &tokenAppsService{
		txManager:    params.TxManager,
		apiTokenRepo: params.APITokenRepo,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *tokenAppsService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Validate reports whether the token authorizes a call right now. It never
// errors: unknown tokens and lookup failures both read as "not valid".
func (srv *tokenAppsService) Validate(ctx context.Context, token string) bool {
	record, err := srv.apiTokenRepo.FindByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, repository.ErrAPITokenNotFound) {
			srv.log(ctx).Error("Failed to look up api token", slog.Any("error", err))
		}

		return false
	}

	return record.Usable(time.Now())
}

// Consume validates the token and burns one unit of quota. The increment is
// a guarded update, so concurrent callers cannot push usage past the quota.
func (srv *tokenAppsService) Consume(ctx context.Context, token string) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewAPITokenRepository()

		record, err := tokenRepo.FindByToken(ctx, token)
		if errors.Is(err, repository.ErrAPITokenNotFound) {
			return errors.Wrap(domainerrors.ErrAPITokenInvalid, "unknown api token")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find api token")
		}

		if !record.Usable(time.Now()) {
			srv.log(ctx).Warn("Unusable api token presented", slog.Any("tokenID", record.ID))

			return errors.Wrap(domainerrors.ErrAPITokenInvalid, "api token inactive, expired or over quota")
		}

		if err := tokenRepo.IncrementUsage(ctx, record.ID); err != nil {
			if errors.Is(err, repository.ErrAPITokenQuotaExceeded) {
				return errors.Wrap(domainerrors.ErrAPITokenExhausted, "quota spent concurrently")
			}

			return errors.Wrap(err, "failed to increment api token usage")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute api token consume transaction")
	}

	return nil
}

// Create mints a new token record with a generated bearer string.
func (srv *tokenAppsService) Create(ctx context.Context, input *usecase.CreateAPITokenInput) (*entity.APIToken, error) {
	record := &entity.APIToken{
		Name:      input.Name,
		Token:     newAPITokenString(),
		Quota:     input.Quota,
		IsActive:  true,
		ExpiredAt: input.ExpiredAt,
		Note:      input.Note,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAPITokenRepository().Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to create api token")
		}

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute api token create transaction")
	}

	srv.log(ctx).Info("API token created", slog.Any("tokenID", record.ID), slog.String("name", record.Name))

	return record, nil
}

// Get returns one token record by ID.
func (srv *tokenAppsService) Get(ctx context.Context, id uuid.UUID) (*entity.APIToken, error) {
	record, err := srv.apiTokenRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAPITokenNotFound) {
		return nil, errors.Wrap(domainerrors.ErrNotFound, "api token lookup by id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find api token by id")
	}

	return record, nil
}

// List returns all token records.
func (srv *tokenAppsService) List(ctx context.Context) ([]*entity.APIToken, error) {
	records, err := srv.apiTokenRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list api tokens")
	}

	return records, nil
}

// Update modifies the mutable fields of a token record.
func (srv *tokenAppsService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateAPITokenInput) (*entity.APIToken, error) {
	var updated *entity.APIToken
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tokenRepo := repoFactory.NewAPITokenRepository()

		record, err := tokenRepo.FindByID(ctx, id)
		if errors.Is(err, repository.ErrAPITokenNotFound) {
			return errors.Wrap(domainerrors.ErrNotFound, "api token lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find api token by id")
		}

		if input.Name != nil {
			record.Name = *input.Name
		}
		if input.Quota != nil {
			record.Quota = *input.Quota
		}
		if input.IsActive != nil {
			record.IsActive = *input.IsActive
		}
		if input.ExpiredAt != nil {
			record.ExpiredAt = *input.ExpiredAt
		}
		if input.Note != nil {
			record.Note = *input.Note
		}

		if err := tokenRepo.Update(ctx, record); err != nil {
			return errors.Wrap(err, "failed to update api token")
		}

		updated = record

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute api token update transaction")
	}

	return updated, nil
}

// Delete removes a token record.
func (srv *tokenAppsService) Delete(ctx context.Context, id uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewAPITokenRepository().Delete(ctx, id); err != nil {
			if errors.Is(err, repository.ErrAPITokenNotFound) {
				return errors.Wrap(domainerrors.ErrNotFound, "api token lookup by id")
			}

			return errors.Wrap(err, "failed to delete api token")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute api token delete transaction")
	}

	srv.log(ctx).Info("API token deleted", slog.Any("tokenID", id))

	return nil
}

// newAPITokenString generates an opaque bearer string for a new api token.
func newAPITokenString() string {
	return strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", "")
}
