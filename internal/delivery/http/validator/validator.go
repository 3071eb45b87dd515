// Package validator adapts go-playground/validator to echo's Validator
// interface.
package validator

import (
	domainerrors "darkstore/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

type echoValidator struct {
	validate *validator.Validate
}

// New creates an echo.Validator backed by struct tags.
func New() *echoValidator {
	return &echoValidator{validate: validator.New()}
}

// Validate checks the bound request struct and maps failures onto the
// application's validation error so the error handler renders a 400.
func (v *echoValidator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
