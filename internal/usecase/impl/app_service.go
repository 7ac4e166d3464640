package impl

import (
	"context"
	"log/slog"

	deliverycontext "inkwell/internal/delivery/context"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// appService implements the AppUsecase interface.
type appService struct {
	appRepo repository.AppRepository
	logger  *slog.Logger
}

// AppServiceParams holds dependencies for AppService, injected by Fx.
type AppServiceParams struct {
	fx.In

	AppRepo repository.AppRepository
	Logger  *slog.Logger
}

// NewAppService is the constructor for appService.
func NewAppService(params AppServiceParams) usecase.AppUsecase {
	return &appService{
		appRepo: params.AppRepo,
		logger:  params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *appService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create adds a catalog entry. An empty slug is derived from the name, and
// the slug must not collide with an existing entry.
func (srv *appService) Create(ctx context.Context, input *usecase.SaveAppInput) (*entity.App, error) {
	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(input.Name)
	}
	if slug == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "slug cannot be derived from an empty name")
	}

	if _, err := srv.appRepo.FindBySlug(ctx, slug); err == nil {
		return nil, errors.Wrap(domainerrors.ErrConflict, "app slug already in use")
	} else if !errors.Is(err, repository.ErrAppNotFound) {
		return nil, errors.Wrap(err, "failed to check app slug uniqueness")
	}

	app := &entity.App{
		Name:        input.Name,
		Slug:        slug,
		Image:       input.Image,
		Description: input.Description,
		URL:         input.URL,
		IsActive:    input.IsActive,
		Features:    input.Features,
	}
	if err := srv.appRepo.Create(ctx, app); err != nil {
		return nil, errors.Wrap(err, "failed to create app")
	}

	srv.log(ctx).Info("App created", slog.Any("appID", app.ID), slog.String("slug", app.Slug))

	return app, nil
}

// Update replaces a catalog entry's fields.
func (srv *appService) Update(ctx context.Context, id uuid.UUID, input *usecase.SaveAppInput) (*entity.App, error) {
	app, err := srv.appRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAppNotFound) {
		return nil, errors.Wrap(domainerrors.ErrAppNotFound, "app lookup by id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find app by id")
	}

	slug := normalizeSlug(input.Slug)
	if slug == "" {
		slug = normalizeSlug(input.Name)
	}
	if slug != "" && slug != app.Slug {
		if _, err := srv.appRepo.FindBySlug(ctx, slug); err == nil {
			return nil, errors.Wrap(domainerrors.ErrConflict, "app slug already in use")
		} else if !errors.Is(err, repository.ErrAppNotFound) {
			return nil, errors.Wrap(err, "failed to check app slug uniqueness")
		}
		app.Slug = slug
	}

	app.Name = input.Name
	app.Image = input.Image
	app.Description = input.Description
	app.URL = input.URL
	app.IsActive = input.IsActive
	app.Features = input.Features

	if err := srv.appRepo.Update(ctx, app); err != nil {
		return nil, errors.Wrap(err, "failed to update app")
	}

	return app, nil
}

// Get returns one entry by ID.
func (srv *appService) Get(ctx context.Context, id uuid.UUID) (*entity.App, error) {
	app, err := srv.appRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrAppNotFound) {
		return nil, errors.Wrap(domainerrors.ErrAppNotFound, "app lookup by id")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find app by id")
	}

	return app, nil
}

// GetBySlug returns one entry by slug.
func (srv *appService) GetBySlug(ctx context.Context, slug string) (*entity.App, error) {
	app, err := srv.appRepo.FindBySlug(ctx, slug)
	if errors.Is(err, repository.ErrAppNotFound) {
		return nil, errors.Wrap(domainerrors.ErrAppNotFound, "app lookup by slug")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find app by slug")
	}

	return app, nil
}

// List returns catalog entries, optionally active ones only.
func (srv *appService) List(ctx context.Context, activeOnly bool) ([]*entity.App, error) {
	apps, err := srv.appRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list apps")
	}

	return apps, nil
}

// Delete removes a catalog entry.
func (srv *appService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.appRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrAppNotFound) {
			return errors.Wrap(domainerrors.ErrAppNotFound, "app lookup by id")
		}

		return errors.Wrap(err, "failed to delete app")
	}

	srv.log(ctx).Info("App deleted", slog.Any("appID", id))

	return nil
}
