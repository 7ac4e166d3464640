package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAppServiceForTest(apps *mockAppRepo) usecase.AppUsecase {
	return NewAppService(AppServiceParams{
		AppRepo: apps,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestAppService_Create_DerivesSlugFromName(t *testing.T) {
	ctx := context.Background()

	apps := &mockAppRepo{}
	apps.On("FindBySlug", ctx, "task-tracker").Return(nil, repository.ErrAppNotFound)
	apps.On("Create", ctx, mock.AnythingOfType("*entity.App")).Run(func(args mock.Arguments) {
		app := args.Get(1).(*entity.App)
		assert.Equal(t, "task-tracker", app.Slug)
		app.ID = uuid.New()
	}).Return(nil)

	srv := newAppServiceForTest(apps)

	app, err := srv.Create(ctx, &usecase.SaveAppInput{Name: "Task Tracker", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "task-tracker", app.Slug)
	assert.True(t, app.IsActive)
	apps.AssertExpectations(t)
}

func TestAppService_Create_RejectsSlugCollision(t *testing.T) {
	ctx := context.Background()

	apps := &mockAppRepo{}
	apps.On("FindBySlug", ctx, "task-tracker").Return(&entity.App{Slug: "task-tracker"}, nil)

	srv := newAppServiceForTest(apps)

	_, err := srv.Create(ctx, &usecase.SaveAppInput{Name: "Task Tracker"})
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestAppService_Create_RejectsEmptyName(t *testing.T) {
	srv := newAppServiceForTest(&mockAppRepo{})

	_, err := srv.Create(context.Background(), &usecase.SaveAppInput{Name: "---"})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestAppService_Update_ReChecksChangedSlug(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()

	apps := &mockAppRepo{}
	apps.On("FindByID", ctx, appID).Return(&entity.App{ID: appID, Name: "Old Name", Slug: "old-name"}, nil)
	apps.On("FindBySlug", ctx, "new-name").Return(nil, repository.ErrAppNotFound)
	apps.On("Update", ctx, mock.AnythingOfType("*entity.App")).Return(nil)

	srv := newAppServiceForTest(apps)

	app, err := srv.Update(ctx, appID, &usecase.SaveAppInput{Name: "New Name", IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "new-name", app.Slug)
	assert.Equal(t, "New Name", app.Name)
	apps.AssertExpectations(t)
}

func TestAppService_Update_KeepsSlugSkipsUniquenessCheck(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()

	apps := &mockAppRepo{}
	apps.On("FindByID", ctx, appID).Return(&entity.App{ID: appID, Name: "Task Tracker", Slug: "task-tracker"}, nil)
	apps.On("Update", ctx, mock.AnythingOfType("*entity.App")).Return(nil)

	srv := newAppServiceForTest(apps)

	app, err := srv.Update(ctx, appID, &usecase.SaveAppInput{Name: "Task Tracker", Slug: "task-tracker"})
	require.NoError(t, err)
	assert.Equal(t, "task-tracker", app.Slug)
	apps.AssertNotCalled(t, "FindBySlug", ctx, "task-tracker")
}

func TestAppService_Get_UnknownID(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()

	apps := &mockAppRepo{}
	apps.On("FindByID", ctx, appID).Return(nil, repository.ErrAppNotFound)

	srv := newAppServiceForTest(apps)

	_, err := srv.Get(ctx, appID)
	assert.True(t, errors.Is(err, domainerrors.ErrAppNotFound))
}

func TestAppService_GetBySlug_ReturnsEntry(t *testing.T) {
	ctx := context.Background()

	apps := &mockAppRepo{}
	apps.On("FindBySlug", ctx, "task-tracker").Return(&entity.App{Slug: "task-tracker", Name: "Task Tracker"}, nil)

	srv := newAppServiceForTest(apps)

	app, err := srv.GetBySlug(ctx, "task-tracker")
	require.NoError(t, err)
	assert.Equal(t, "Task Tracker", app.Name)
}

func TestAppService_List_ActiveOnlyPassthrough(t *testing.T) {
	ctx := context.Background()

	apps := &mockAppRepo{}
	apps.On("List", ctx, true).Return([]*entity.App{{Slug: "live-app", IsActive: true}}, nil)

	srv := newAppServiceForTest(apps)

	list, err := srv.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].IsActive)
	apps.AssertExpectations(t)
}

func TestAppService_Delete_UnknownID(t *testing.T) {
	ctx := context.Background()
	appID := uuid.New()

	apps := &mockAppRepo{}
	apps.On("Delete", ctx, appID).Return(repository.ErrAppNotFound)

	srv := newAppServiceForTest(apps)

	err := srv.Delete(ctx, appID)
	assert.True(t, errors.Is(err, domainerrors.ErrAppNotFound))
}
