// Package impl contains the implementation of the application's business logic.
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
	"inkwell/internal/domain/service"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new identity after checking both uniqueness constraints
// and the password confirmation. No tokens are issued here.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.PublicProjection, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email), slog.String("userName", input.UserName))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
			srv.log(ctx).Warn("Registration rejected, email already registered", slog.String("email", input.Email))

			return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email uniqueness")
		}

		if _, err := userRepo.FindByUserName(ctx, input.UserName); err == nil {
			srv.log(ctx).Warn("Registration rejected, username already registered", slog.String("userName", input.UserName))

			return errors.Wrap(domainerrors.ErrUsernameTaken, "username already registered")
		} else if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check username uniqueness")
		}

		if input.Password != input.ConfirmPassword {
			return errors.Wrap(domainerrors.ErrPasswordConfirmation, "password confirmation mismatch")
		}

		hashed, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		newUser := &entity.User{
			UserName:     input.UserName,
			Email:        input.Email,
			PasswordHash: hashed,
			Roles:        entity.RolesFromStrings(input.Roles),
			Status:       input.Status,
			IsVerified:   input.IsVerified,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		registered = newUser

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", registered.ID))

	return registered.Public(), nil
}

// Login verifies credentials and stores a freshly issued token pair,
// replacing whatever pair the user held before.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting login", slog.String("email", input.Email))

	var out *usecase.AuthOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		tokenRepo := repoFactory.NewTokenPairRepository()

		user, err := userRepo.FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempted for unknown email", slog.String("email", input.Email))

			return errors.Wrap(domainerrors.ErrUserNotFound, "login attempted for unknown email")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		if !srv.hasher.Check(input.Password, user.PasswordHash) {
			srv.log(ctx).Warn("Password mismatch during login", slog.Any("userID", user.ID))

			return errors.Wrap(domainerrors.ErrPasswordNotMatch, "password mismatch during login")
		}

		token, err := srv.issuePair(ctx, tokenRepo, user.ID)
		if err != nil {
			return err
		}

		out = &usecase.AuthOutput{User: user.Public(), Token: token}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	srv.log(ctx).Debug("Login completed", slog.Any("userID", out.User.ID))

	return out, nil
}

// Refresh rotates the token pair. The presented refresh token must match the
// stored row for its subject, which is what rejects superseded tokens.
func (srv *authService) Refresh(ctx context.Context, input *usecase.RefreshInput) (*usecase.AuthOutput, error) {
	refreshToken := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(input.RefreshToken), "Bearer "))

	userID, err := srv.tokenService.ValidateRefreshToken(refreshToken)
	if err != nil {
		srv.log(ctx).Warn("Refresh token failed validation", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, err.Error())
	}

	var out *usecase.AuthOutput
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()
		tokenRepo := repoFactory.NewTokenPairRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Refresh token subject no longer exists", slog.Any("userID", userID))

			return errors.Wrap(domainerrors.ErrUserMissing, "refresh token subject no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by refresh subject")
		}

		if _, err := tokenRepo.FindByUserAndRefreshToken(ctx, userID, refreshToken); err != nil {
			if errors.Is(err, repository.ErrTokenPairNotFound) {
				srv.log(ctx).Warn("Presented refresh token is not the stored one", slog.Any("userID", userID))

				return errors.Wrap(domainerrors.ErrTokenNotFound, "refresh token superseded or never stored")
			}

			return errors.Wrap(err, "failed to look up stored token pair")
		}

		token, err := srv.issuePair(ctx, tokenRepo, user.ID)
		if err != nil {
			return err
		}

		out = &usecase.AuthOutput{User: user.Public(), Token: token}

		return nil
	})

	if err != nil {
		return nil, errors.Wrap(err, "failed to execute refresh transaction")
	}

	srv.log(ctx).Debug("Token pair rotated", slog.Any("userID", out.User.ID))

	return out, nil
}

// Logout discards the user's stored token pair.
func (srv *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewTokenPairRepository().DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete token pair")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute logout transaction")
	}

	srv.log(ctx).Info("Logged out", slog.Any("userID", userID))

	return nil
}

// ForgotPassword verifies the account exists. Mail delivery is out of scope,
// so a known email simply succeeds.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		_, err := repoFactory.NewUserRepository().FindByEmail(ctx, input.Email)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserMissing, "password reset requested for unknown email")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by email")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute forgot password transaction")
	}

	srv.log(ctx).Info("Password reset requested", slog.String("email", input.Email))

	return nil
}

// issuePair signs a fresh access/refresh pair and overwrites the user's
// stored row with it.
func (srv *authService) issuePair(ctx context.Context, tokenRepo repository.TokenPairRepository, userID uuid.UUID) (*usecase.TokenOutput, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign access token")
	}

	refreshToken, err := srv.tokenService.GenerateRefreshToken(userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign refresh token")
	}

	loginAt := time.Now()
	pair := &entity.TokenPair{
		UserID:       userID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    entity.TokenTypeBearer,
		LoginAt:      loginAt,
	}

	if err := tokenRepo.Upsert(ctx, pair); err != nil {
		return nil, errors.Wrap(err, "failed to store token pair")
	}

	return &usecase.TokenOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    entity.TokenTypeBearer,
		LoginAt:      loginAt,
	}, nil
}
