package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateProfileInput carries the mutable account fields. Empty strings leave
// the current value untouched.
type UpdateProfileInput struct {
	UserName string
	Email    string
}

// ChangePasswordInput carries a password change request.
type ChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// UserUsecase defines account management operations for an authenticated user.
type UserUsecase interface {
	// Detail returns the user's account projection.
	Detail(ctx context.Context, userID uuid.UUID) (*entity.PublicProjection, error)

	// UpdateProfile changes the user's username and/or email, re-checking
	// uniqueness for whichever field changes.
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.PublicProjection, error)

	// ChangePassword replaces the password after verifying the old one.
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error

	// List returns every registered account. Intended for admin callers.
	List(ctx context.Context) ([]*entity.PublicProjection, error)

	// Delete removes an account and its stored token pair.
	Delete(ctx context.Context, userID uuid.UUID) error
}
