// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Token verification failure modes. ErrTokenExpired is the only
// recoverable one: an expired access token may still be refreshed.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Token type markers carried in the "type" claim.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// UserData is the small profile claim embedded in every session token.
type UserData struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Claims is the verified content of a session token.
type Claims struct {
	UserID    string
	UserData  UserData
	Type      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService creates and verifies the signed, time-limited session
// tokens. Access and refresh tokens use distinct secrets so a leaked
// access secret only compromises short-lived tokens.
type TokenService interface {
	// IssueTokenPair mints an access token (~1h) and a refresh token
	// (~1 week), both carrying {sub: userID, userData}.
	IssueTokenPair(userID string, data UserData) (accessToken, refreshToken string, err error)

	// IssueAccessToken mints only a fresh access token, used when a valid
	// refresh token silently re-enters the authenticated state.
	IssueAccessToken(userID string, data UserData) (string, error)

	// IssueRefreshToken mints only a fresh refresh token with a reset
	// lifetime, used by the sliding-window rotation endpoint.
	IssueRefreshToken(userID string, data UserData) (string, error)

	// ParseAccess verifies a token against the access secret.
	ParseAccess(token string) (*Claims, error)

	// ParseRefresh verifies a token against the refresh secret.
	ParseRefresh(token string) (*Claims, error)

	// AccessTTL returns the configured access token lifetime.
	AccessTTL() time.Duration

	// RefreshTTL returns the configured refresh token lifetime.
	RefreshTTL() time.Duration
}

// SessionValidator is consulted after signature/expiry checks pass.
// The default implementation is stateless and always accepts; a
// server-side revocation list can slot in here without changing callers.
type SessionValidator interface {
	Validate(ctx context.Context, claims *Claims) error
}
