package impl

import (
	"context"
	"log/slog"

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

// userService implements the UserUsecase interface.
type userService struct {
	txManager repository.TransactionManager
	hasher    service.PasswordHasher
	logger    *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager: params.TxManager,
		hasher:    params.Hasher,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Detail returns the account projection for the given user.
func (srv *userService) Detail(ctx context.Context, userID uuid.UUID) (*entity.PublicProjection, error) {
	var user *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserMissing, "user lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		user = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute user detail transaction")
	}

	return user.Public(), nil
}

// UpdateProfile changes the username and/or email, re-checking uniqueness for
// whichever field actually changes.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.PublicProjection, error) {
	srv.log(ctx).Info("Updating profile", slog.Any("userID", userID))

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserMissing, "user lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		if input.Email != "" && input.Email != user.Email {
			if _, err := userRepo.FindByEmail(ctx, input.Email); err == nil {
				return errors.Wrap(domainerrors.ErrEmailTaken, "email already registered")
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check email uniqueness")
			}
			user.Email = input.Email
		}

		if input.UserName != "" && input.UserName != user.UserName {
			if _, err := userRepo.FindByUserName(ctx, input.UserName); err == nil {
				return errors.Wrap(domainerrors.ErrUsernameTaken, "username already registered")
			} else if !errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(err, "failed to check username uniqueness")
			}
			user.UserName = input.UserName
		}

		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update user")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("userID", userID))

	return updated.Public(), nil
}

// ChangePassword replaces the password after verifying the old one. The
// stored token pair is discarded so every session has to log in again.
func (srv *userService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	srv.log(ctx).Info("Changing password", slog.Any("userID", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserMissing, "user lookup by id")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		if !srv.hasher.Check(input.OldPassword, user.PasswordHash) {
			srv.log(ctx).Warn("Old password mismatch", slog.Any("userID", userID))

			return errors.Wrap(domainerrors.ErrPasswordNotMatch, "old password mismatch")
		}

		if input.NewPassword != input.ConfirmPassword {
			return errors.Wrap(domainerrors.ErrPasswordConfirmation, "password confirmation mismatch")
		}

		hashed, err := srv.hasher.Hash(input.NewPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}

		user.PasswordHash = hashed
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to update password")
		}

		if err := repoFactory.NewTokenPairRepository().DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke token pair after password change")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute password change transaction")
	}

	srv.log(ctx).Debug("Password changed", slog.Any("userID", userID))

	return nil
}

// List returns every registered account projection.
func (srv *userService) List(ctx context.Context) ([]*entity.PublicProjection, error) {
	var users []*entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.NewUserRepository().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list users")
		}

		users = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute user list transaction")
	}

	projections := make([]*entity.PublicProjection, len(users))
	for i, user := range users {
		projections[i] = user.Public()
	}

	return projections, nil
}

// Delete removes an account together with its stored token pair.
func (srv *userService) Delete(ctx context.Context, userID uuid.UUID) error {
	srv.log(ctx).Info("Deleting account", slog.Any("userID", userID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewTokenPairRepository().DeleteByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete token pair")
		}

		if err := repoFactory.NewUserRepository().Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrUserMissing, "user lookup by id")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to execute account delete transaction")
	}

	return nil
}
