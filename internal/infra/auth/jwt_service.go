// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"dealradar/config"
	"dealradar/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
}

// sessionClaims is the wire shape of a session token.
type sessionClaims struct {
	UserData service.UserData `json:"userData"`
	Type     string           `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
	}, nil
}

// IssueTokenPair creates a new access token and refresh token for a user.
func (s *jwtService) IssueTokenPair(userID string, data service.UserData) (string, string, error) {
	accessToken, err := s.sign(userID, data, s.accessTTL, s.accessSecret, service.TokenTypeAccess)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.sign(userID, data, s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

// IssueAccessToken mints only a fresh access token.
func (s *jwtService) IssueAccessToken(userID string, data service.UserData) (string, error) {
	return s.sign(userID, data, s.accessTTL, s.accessSecret, service.TokenTypeAccess)
}

// IssueRefreshToken mints only a fresh refresh token with a reset lifetime.
func (s *jwtService) IssueRefreshToken(userID string, data service.UserData) (string, error) {
	return s.sign(userID, data, s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
}

// ParseAccess verifies a token string against the access secret.
func (s *jwtService) ParseAccess(token string) (*service.Claims, error) {
	return s.parse(token, s.accessSecret)
}

// ParseRefresh verifies a token string against the refresh secret.
func (s *jwtService) ParseRefresh(token string) (*service.Claims, error) {
	return s.parse(token, s.refreshSecret)
}

// AccessTTL returns the configured access token lifetime.
func (s *jwtService) AccessTTL() time.Duration {
	return s.accessTTL
}

// RefreshTTL returns the configured refresh token lifetime.
func (s *jwtService) RefreshTTL() time.Duration {
	return s.refreshTTL
}

// sign creates a JWT with the session claim set.
func (s *jwtService) sign(userID string, data service.UserData, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		UserData: data,
		Type:     tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// parse verifies signature and expiry, mapping failures onto the two
// domain sentinels so callers can branch on recoverability.
func (s *jwtService) parse(tokenString, secret string) (*service.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &sessionClaims{}, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.Wrap(service.ErrTokenExpired, err.Error())
		}

		return nil, errors.Wrap(service.ErrTokenInvalid, err.Error())
	}

	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return nil, errors.Wrap(service.ErrTokenInvalid, "unexpected claim set")
	}

	out := &service.Claims{
		UserID:   claims.Subject,
		UserData: claims.UserData,
		Type:     claims.Type,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}

	return out, nil
}
