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

func newUserServiceForTest(users *mockUserRepo, tokens *mockTokenPairRepo) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager: &stubTxManager{factory: &stubFactory{users: users, tokens: tokens}},
		Hasher:    stubHasher{},
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestUserService_Detail_OmitsPasswordHash(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		UserName:     "writer",
		Email:        "writer@example.com",
		PasswordHash: "hashed:secret",
		Roles:        entity.Roles{entity.RoleUser, entity.RoleAdmin},
	}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	out, err := service.Detail(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, "writer", out.UserName)
	assert.Equal(t, []string{"user", "admin"}, out.Roles)
}

func TestUserService_Detail_UnknownUser(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	_, err := service.Detail(ctx, userID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserMissing))
}

func TestUserService_UpdateProfile_ChecksEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, UserName: "writer", Email: "old@example.com"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)
	users.On("FindByEmail", ctx, "taken@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	_, err := service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Email: "taken@example.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_UpdateProfile_SkipsUnchangedFields(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, UserName: "writer", Email: "same@example.com"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)
	users.On("Update", ctx, user).Return(nil)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	out, err := service.UpdateProfile(ctx, userID, &usecase.UpdateProfileInput{Email: "same@example.com"})

	require.NoError(t, err)
	assert.Equal(t, "same@example.com", out.Email)
	users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "hashed:old"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)
	users.On("Update", ctx, user).Run(func(args mock.Arguments) {
		assert.Equal(t, "hashed:new", args.Get(1).(*entity.User).PasswordHash)
	}).Return(nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("DeleteByUserID", ctx, userID).Return(nil)

	service := newUserServiceForTest(users, tokens)

	err := service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		OldPassword:     "old",
		NewPassword:     "new",
		ConfirmPassword: "new",
	})

	require.NoError(t, err)
	tokens.AssertExpectations(t)
}

func TestUserService_ChangePassword_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "hashed:right"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	err := service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		OldPassword:     "wrong",
		NewPassword:     "new",
		ConfirmPassword: "new",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordNotMatch))
	users.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUserService_ChangePassword_ConfirmationMismatch(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, PasswordHash: "hashed:old"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)

	service := newUserServiceForTest(users, &mockTokenPairRepo{})

	err := service.ChangePassword(ctx, userID, &usecase.ChangePasswordInput{
		OldPassword:     "old",
		NewPassword:     "new",
		ConfirmPassword: "other",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordConfirmation))
}

func TestUserService_Delete_RemovesTokensFirst(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &mockUserRepo{}
	users.On("Delete", ctx, userID).Return(nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("DeleteByUserID", ctx, userID).Return(nil)

	service := newUserServiceForTest(users, tokens)

	require.NoError(t, service.Delete(ctx, userID))
	users.AssertExpectations(t)
	tokens.AssertExpectations(t)
}
