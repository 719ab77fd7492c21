package middleware

import (
	"dealradar/internal/delivery/http/cookies"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUserData = "userData"
)

// AuthMiddleware guards routes with the cookie-carried session tokens.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	validator service.SessionValidator
	cookies   *cookies.Manager
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, validator service.SessionValidator, cookieManager *cookies.Manager) *AuthMiddleware {
	return &AuthMiddleware{
		tokenSvc:  tokenSvc,
		validator: validator,
		cookies:   cookieManager,
	}
}

// Authenticate validates the access cookie. An expired access token, and
// only an expired one, silently falls through to the refresh cookie: a
// valid refresh token mints a replacement access token on the spot. Any
// other verification failure terminates the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		accessToken, accessErr := m.cookies.Read(c, cookies.AccessToken)

		if accessErr != nil {
			if !errors.Is(accessErr, cookies.ErrCookieMissing) {
				return domainerrors.ErrSessionInvalid.WrapMessage("access cookie rejected")
			}

			// No access cookie at all: a refresh cookie alone may still
			// re-enter the session, absent both it is an anonymous request.
			if _, refreshErr := m.cookies.Read(c, cookies.RefreshToken); errors.Is(refreshErr, cookies.ErrCookieMissing) {
				return domainerrors.ErrNotAuthenticated.WrapMessage("no session cookies")
			}

			return m.refreshAndContinue(c, next)
		}

		claims, err := m.tokenSvc.ParseAccess(accessToken)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				return m.refreshAndContinue(c, next)
			}

			return domainerrors.ErrSessionInvalid.WrapMessage("access token rejected")
		}

		if err := m.validator.Validate(c.Request().Context(), claims); err != nil {
			return domainerrors.ErrSessionInvalid.WrapMessage("session rejected")
		}

		return m.attachIdentity(c, next, claims)
	}
}

// refreshAndContinue is the expired-access path: a valid refresh cookie
// yields a brand-new access token, cookied before the handler runs.
func (m *AuthMiddleware) refreshAndContinue(c echo.Context, next echo.HandlerFunc) error {
	refreshToken, err := m.cookies.Read(c, cookies.RefreshToken)
	if err != nil {
		if errors.Is(err, cookies.ErrCookieMissing) {
			return domainerrors.ErrSessionExpired.WrapMessage("access expired and no refresh cookie")
		}

		return domainerrors.ErrSessionInvalid.WrapMessage("refresh cookie rejected")
	}

	claims, err := m.tokenSvc.ParseRefresh(refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			return domainerrors.ErrSessionExpired.WrapMessage("refresh token expired")
		}

		return domainerrors.ErrSessionInvalid.WrapMessage("refresh token rejected")
	}

	if err := m.validator.Validate(c.Request().Context(), claims); err != nil {
		return domainerrors.ErrSessionInvalid.WrapMessage("session rejected")
	}

	accessToken, err := m.tokenSvc.IssueAccessToken(claims.UserID, claims.UserData)
	if err != nil {
		return errors.Wrap(err, "failed to mint replacement access token")
	}
	m.cookies.SetAccess(c, accessToken, m.tokenSvc.AccessTTL())

	return m.attachIdentity(c, next, claims)
}

func (m *AuthMiddleware) attachIdentity(c echo.Context, next echo.HandlerFunc, claims *service.Claims) error {
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return domainerrors.ErrSessionInvalid.WrapMessage("malformed subject claim")
	}

	c.Set(ContextKeyUserID, userID)
	c.Set(ContextKeyUserData, claims.UserData)

	return next(c)
}

// RequireRefreshToken gates the rotation endpoint: it only checks that a
// refresh cookie with a valid signature is present and stores the raw
// token for the handler. Token verification is the usecase's job.
func (m *AuthMiddleware) RequireRefreshToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		refreshToken, err := m.cookies.Read(c, cookies.RefreshToken)
		if err != nil {
			if errors.Is(err, cookies.ErrCookieMissing) {
				return domainerrors.ErrNotAuthenticated.WrapMessage("no refresh cookie")
			}

			return domainerrors.ErrSessionInvalid.WrapMessage("refresh cookie rejected")
		}

		c.Set(cookies.RefreshToken, refreshToken)

		return next(c)
	}
}
