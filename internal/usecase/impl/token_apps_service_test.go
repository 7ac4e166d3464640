package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

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

func newTokenAppsServiceForTest(apiTokens *mockAPITokenRepo) usecase.TokenAppsUsecase {
	return NewTokenAppsService(TokenAppsServiceParams{
		TxManager:    &stubTxManager{factory: &stubFactory{apiTokens: apiTokens}},
		APITokenRepo: apiTokens,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func activeToken(usage, quota int) *entity.APIToken {
	return &entity.APIToken{
		ID:         uuid.New(),
		Name:       "consumer-app",
		Token:      "bearer-string",
		Quota:      quota,
		UsageCount: usage,
		IsActive:   true,
		ExpiredAt:  time.Now().Add(24 * time.Hour),
	}
}

func TestTokenAppsService_Validate_QuotaBoundary(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		usage int
		want  bool
	}{
		{name: "under quota", usage: 4, want: true},
		{name: "at quota", usage: 5, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apiTokens := &mockAPITokenRepo{}
			apiTokens.On("FindByToken", ctx, "bearer-string").Return(activeToken(tc.usage, 5), nil)

			service := newTokenAppsServiceForTest(apiTokens)

			assert.Equal(t, tc.want, service.Validate(ctx, "bearer-string"))
		})
	}
}

func TestTokenAppsService_Validate_UnknownToken(t *testing.T) {
	ctx := context.Background()
	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "nope").Return(nil, repository.ErrAPITokenNotFound)

	service := newTokenAppsServiceForTest(apiTokens)

	assert.False(t, service.Validate(ctx, "nope"))
}

func TestTokenAppsService_Validate_InactiveToken(t *testing.T) {
	ctx := context.Background()
	record := activeToken(0, 5)
	record.IsActive = false

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "bearer-string").Return(record, nil)

	service := newTokenAppsServiceForTest(apiTokens)

	assert.False(t, service.Validate(ctx, "bearer-string"))
}

func TestTokenAppsService_Validate_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	record := activeToken(0, 5)
	record.ExpiredAt = time.Now().Add(-time.Minute)

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "bearer-string").Return(record, nil)

	service := newTokenAppsServiceForTest(apiTokens)

	assert.False(t, service.Validate(ctx, "bearer-string"))
}

func TestTokenAppsService_Consume_Success(t *testing.T) {
	ctx := context.Background()
	record := activeToken(2, 5)

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "bearer-string").Return(record, nil)
	apiTokens.On("IncrementUsage", ctx, record.ID).Return(nil)

	service := newTokenAppsServiceForTest(apiTokens)

	require.NoError(t, service.Consume(ctx, "bearer-string"))
	apiTokens.AssertExpectations(t)
}

func TestTokenAppsService_Consume_UnknownToken(t *testing.T) {
	ctx := context.Background()
	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "nope").Return(nil, repository.ErrAPITokenNotFound)

	service := newTokenAppsServiceForTest(apiTokens)

	err := service.Consume(ctx, "nope")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAPITokenInvalid))
	assert.Equal(t, "Token tidak valid", domainerrors.ErrAPITokenInvalid.Message())
}

func TestTokenAppsService_Consume_QuotaSpentConcurrently(t *testing.T) {
	ctx := context.Background()
	record := activeToken(4, 5)

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "bearer-string").Return(record, nil)
	apiTokens.On("IncrementUsage", ctx, record.ID).Return(repository.ErrAPITokenQuotaExceeded)

	service := newTokenAppsServiceForTest(apiTokens)

	err := service.Consume(ctx, "bearer-string")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAPITokenExhausted))
}

func TestTokenAppsService_Consume_ExhaustedTokenNeverIncrements(t *testing.T) {
	ctx := context.Background()
	record := activeToken(5, 5)

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByToken", ctx, "bearer-string").Return(record, nil)

	service := newTokenAppsServiceForTest(apiTokens)

	err := service.Consume(ctx, "bearer-string")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrAPITokenInvalid))
	apiTokens.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
}

func TestTokenAppsService_Create_GeneratesToken(t *testing.T) {
	ctx := context.Background()
	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("Create", ctx, mock.AnythingOfType("*entity.APIToken")).Return(nil)

	service := newTokenAppsServiceForTest(apiTokens)

	record, err := service.Create(ctx, &usecase.CreateAPITokenInput{
		Name:      "consumer-app",
		Quota:     100,
		ExpiredAt: time.Now().Add(30 * 24 * time.Hour),
	})

	require.NoError(t, err)
	assert.Len(t, record.Token, 64)
	assert.True(t, record.IsActive)
	assert.Equal(t, 100, record.Quota)
}

func TestTokenAppsService_Update_PartialFields(t *testing.T) {
	ctx := context.Background()
	record := activeToken(0, 5)

	apiTokens := &mockAPITokenRepo{}
	apiTokens.On("FindByID", ctx, record.ID).Return(record, nil)
	apiTokens.On("Update", ctx, record).Return(nil)

	service := newTokenAppsServiceForTest(apiTokens)

	quota := 50
	inactive := false
	updated, err := service.Update(ctx, record.ID, &usecase.UpdateAPITokenInput{Quota: &quota, IsActive: &inactive})

	require.NoError(t, err)
	assert.Equal(t, 50, updated.Quota)
	assert.False(t, updated.IsActive)
	assert.Equal(t, "consumer-app", updated.Name)
}
