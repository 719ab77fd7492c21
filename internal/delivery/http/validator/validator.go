// Package validator adapts go-playground/validator to echo's Validator
// interface. Schema failures become 422 before any controller runs.
package validator

import (
	domainerrors "dealradar/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// Validator wraps a shared validator instance.
type Validator struct {
	validate *validator.Validate
}

// New creates the echo.Validator used by the HTTP server.
func New() *Validator {
	return &Validator{validate: validator.New()}
}

// Validate implements echo.Validator.
func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage(err.Error())
	}

	return nil
}
