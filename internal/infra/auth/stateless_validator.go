package auth

import (
	"context"

	"dealradar/internal/domain/service"
)

// statelessValidator accepts every signature-valid, unexpired claim set.
// Sessions carry all their state in the signed cookies; there is no
// server-side revocation list. Swapping this implementation for a
// denylist-backed one requires no caller changes.
type statelessValidator struct{}

// NewStatelessValidator is the constructor for statelessValidator.
func NewStatelessValidator() service.SessionValidator {
	return &statelessValidator{}
}

// Validate always accepts.
func (v *statelessValidator) Validate(_ context.Context, _ *service.Claims) error {
	return nil
}
