// Package validator adapts go-playground/validator to Echo's Validator
// interface.
package validator

import (
	domainerrors "inkwell/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// echoValidator wraps a single validator instance; it is safe for
// concurrent use and caches struct metadata internally.
type echoValidator struct {
	validate *validator.Validate
}

// New builds the Echo validator backed by go-playground/validator.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks the bound request struct against its `validate` tags.
// Failures surface as the shared validation error so the error handler
// renders a consistent 400 body.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
