package usecase

import "context"

// RotateOutput returns the replacement refresh token minted by rotation.
type RotateOutput struct {
	RefreshToken string
}

// SessionUsecase manages the stateless session lifecycle beyond what the
// authentication middleware does inline.
type SessionUsecase interface {
	// RotateRefreshToken validates the presented refresh token and mints a
	// brand-new one with a reset lifetime (sliding window).
	RotateRefreshToken(ctx context.Context, refreshToken string) (*RotateOutput, error)
}
