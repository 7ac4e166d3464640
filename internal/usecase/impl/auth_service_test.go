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

func newAuthServiceForTest(users *mockUserRepo, tokens *mockTokenPairRepo, tokenService *stubTokenService) usecase.AuthUsecase {
	return NewAuthService(AuthServiceParams{
		TxManager:    &stubTxManager{factory: &stubFactory{users: users, tokens: tokens}},
		Hasher:       stubHasher{},
		TokenService: tokenService,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
}

func TestAuthService_Register_Success(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("FindByUserName", ctx, "newcomer").Return(nil, repository.ErrUserNotFound)
	users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*entity.User)
		assert.Equal(t, "hashed:s3cret", user.PasswordHash)
		assert.True(t, user.Roles.Has(entity.RoleUser))
		user.ID = uuid.New()
	}).Return(nil)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	out, err := service.Register(ctx, &usecase.RegisterInput{
		UserName:        "newcomer",
		Email:           "new@example.com",
		Password:        "s3cret",
		ConfirmPassword: "s3cret",
		Roles:           []string{"user"},
		Status:          "ACTIVE",
	})

	require.NoError(t, err)
	assert.Equal(t, "newcomer", out.UserName)
	assert.Equal(t, "new@example.com", out.Email)
	users.AssertExpectations(t)
}

func TestAuthService_Register_StoresProvidedRolesStatusVerified(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "a@x.com").Return(nil, repository.ErrUserNotFound)
	users.On("FindByUserName", ctx, "alice").Return(nil, repository.ErrUserNotFound)

	var persisted *entity.User
	users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Run(func(args mock.Arguments) {
		persisted = args.Get(1).(*entity.User)
		persisted.ID = uuid.New()
	}).Return(nil)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	out, err := service.Register(ctx, &usecase.RegisterInput{
		UserName:        "alice",
		Email:           "a@x.com",
		Password:        "pw123456",
		ConfirmPassword: "pw123456",
		Roles:           []string{"user"},
		Status:          "ACTIVE",
		IsVerified:      true,
	})

	require.NoError(t, err)
	require.NotNil(t, persisted)
	assert.Equal(t, []string{"user"}, persisted.Roles.ToStrings())
	assert.Equal(t, "ACTIVE", persisted.Status)
	assert.True(t, persisted.IsVerified)
	assert.True(t, out.IsVerified)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "taken@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	_, err := service.Register(ctx, &usecase.RegisterInput{
		UserName:        "whoever",
		Email:           "taken@example.com",
		Password:        "pw",
		ConfirmPassword: "pw",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailTaken))
	assert.Equal(t, "Email sudah terdaftar", domainerrors.ErrEmailTaken.Message())
}

func TestAuthService_Register_UsernameTaken(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("FindByUserName", ctx, "taken").Return(&entity.User{ID: uuid.New()}, nil)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	_, err := service.Register(ctx, &usecase.RegisterInput{
		UserName:        "taken",
		Email:           "new@example.com",
		Password:        "pw",
		ConfirmPassword: "pw",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUsernameTaken))
	assert.Equal(t, "Username sudah terdaftar", domainerrors.ErrUsernameTaken.Message())
}

func TestAuthService_Register_PasswordConfirmationMismatch(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "new@example.com").Return(nil, repository.ErrUserNotFound)
	users.On("FindByUserName", ctx, "newcomer").Return(nil, repository.ErrUserNotFound)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	_, err := service.Register(ctx, &usecase.RegisterInput{
		UserName:        "newcomer",
		Email:           "new@example.com",
		Password:        "pw",
		ConfirmPassword: "different",
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordConfirmation))
	assert.Equal(t, "Password tidak sama", domainerrors.ErrPasswordConfirmation.Message())
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		UserName:     "writer",
		Email:        "writer@example.com",
		PasswordHash: "hashed:s3cret",
		Roles:        entity.Roles{entity.RoleUser},
		Status:       "ACTIVE",
	}

	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "writer@example.com").Return(user, nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("Upsert", ctx, mock.AnythingOfType("*entity.TokenPair")).Run(func(args mock.Arguments) {
		pair := args.Get(1).(*entity.TokenPair)
		assert.Equal(t, userID, pair.UserID)
		assert.Equal(t, "access-1", pair.AccessToken)
		assert.Equal(t, "refresh-1", pair.RefreshToken)
		assert.Equal(t, entity.TokenTypeBearer, pair.TokenType)
	}).Return(nil)

	service := newAuthServiceForTest(users, tokens, &stubTokenService{accessToken: "access-1", refreshToken: "refresh-1"})

	out, err := service.Login(ctx, &usecase.LoginInput{Email: "writer@example.com", Password: "s3cret"})

	require.NoError(t, err)
	assert.Equal(t, "writer", out.User.UserName)
	assert.Equal(t, "access-1", out.Token.AccessToken)
	assert.Equal(t, entity.TokenTypeBearer, out.Token.TokenType)
	tokens.AssertExpectations(t)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	tokens := &mockTokenPairRepo{}
	service := newAuthServiceForTest(users, tokens, &stubTokenService{})

	_, err := service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "pw"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
	assert.Equal(t, "User not found", domainerrors.ErrUserNotFound.Message())
	tokens.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAuthService_Login_WrongPasswordMutatesNothing(t *testing.T) {
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Email: "writer@example.com", PasswordHash: "hashed:right"}

	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "writer@example.com").Return(user, nil)

	tokens := &mockTokenPairRepo{}
	service := newAuthServiceForTest(users, tokens, &stubTokenService{})

	_, err := service.Login(ctx, &usecase.LoginInput{Email: "writer@example.com", Password: "wrong"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordNotMatch))
	assert.Equal(t, "Password not match", domainerrors.ErrPasswordNotMatch.Message())
	tokens.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{ID: userID, UserName: "writer", Email: "writer@example.com"}

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(user, nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("FindByUserAndRefreshToken", ctx, userID, "refresh-old").Return(&entity.TokenPair{UserID: userID, RefreshToken: "refresh-old"}, nil)
	tokens.On("Upsert", ctx, mock.AnythingOfType("*entity.TokenPair")).Run(func(args mock.Arguments) {
		pair := args.Get(1).(*entity.TokenPair)
		assert.Equal(t, "refresh-new", pair.RefreshToken)
		assert.Equal(t, "access-new", pair.AccessToken)
	}).Return(nil)

	tokenService := &stubTokenService{accessToken: "access-new", refreshToken: "refresh-new", subject: userID}
	service := newAuthServiceForTest(users, tokens, tokenService)

	out, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "refresh-old"})

	require.NoError(t, err)
	assert.Equal(t, "refresh-new", out.Token.RefreshToken)
	tokens.AssertExpectations(t)
}

func TestAuthService_Refresh_StripsBearerPrefix(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("FindByUserAndRefreshToken", ctx, userID, "refresh-old").Return(&entity.TokenPair{UserID: userID}, nil)
	tokens.On("Upsert", ctx, mock.Anything).Return(nil)

	service := newAuthServiceForTest(users, tokens, &stubTokenService{subject: userID, accessToken: "a", refreshToken: "r"})

	_, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "Bearer refresh-old"})

	require.NoError(t, err)
	tokens.AssertExpectations(t)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	service := newAuthServiceForTest(&mockUserRepo{}, &mockTokenPairRepo{}, &stubTokenService{
		validateErr: errors.New("signature is invalid"),
	})

	_, err := service.Refresh(context.Background(), &usecase.RefreshInput{RefreshToken: "garbage"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
	assert.Equal(t, "Token tidak valid", domainerrors.ErrTokenInvalid.Message())
}

func TestAuthService_Refresh_UnknownSubject(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{subject: userID})

	_, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "refresh-old"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserMissing))
	assert.Equal(t, "User tidak ditemukan", domainerrors.ErrUserMissing.Message())
}

// A superseded refresh token still carries a valid signature, but it no
// longer matches the stored row, so replaying it must fail.
func TestAuthService_Refresh_SupersededTokenRejected(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	users := &mockUserRepo{}
	users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)

	tokens := &mockTokenPairRepo{}
	tokens.On("FindByUserAndRefreshToken", ctx, userID, "refresh-superseded").Return(nil, repository.ErrTokenPairNotFound)

	service := newAuthServiceForTest(users, tokens, &stubTokenService{subject: userID})

	_, err := service.Refresh(ctx, &usecase.RefreshInput{RefreshToken: "refresh-superseded"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenNotFound))
	assert.Equal(t, "Token tidak ditemukan", domainerrors.ErrTokenNotFound.Message())
	tokens.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAuthService_Logout_DeletesPair(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tokens := &mockTokenPairRepo{}
	tokens.On("DeleteByUserID", ctx, userID).Return(nil)

	service := newAuthServiceForTest(&mockUserRepo{}, tokens, &stubTokenService{})

	require.NoError(t, service.Logout(ctx, userID))
	tokens.AssertExpectations(t)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	err := service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "ghost@example.com"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserMissing))
}

func TestAuthService_ForgotPassword_KnownEmail(t *testing.T) {
	ctx := context.Background()
	users := &mockUserRepo{}
	users.On("FindByEmail", ctx, "writer@example.com").Return(&entity.User{ID: uuid.New()}, nil)

	service := newAuthServiceForTest(users, &mockTokenPairRepo{}, &stubTokenService{})

	require.NoError(t, service.ForgotPassword(ctx, &usecase.ForgotPasswordInput{Email: "writer@example.com"}))
}
