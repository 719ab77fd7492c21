// Package cookies manages the signed session cookies the API issues.
package cookies

import (
	"net/http"
	"time"

	"dealradar/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Session cookie names.
const (
	AccessToken  = "accessToken"
	RefreshToken = "refreshToken"
)

// ErrCookieMissing reports an absent session cookie.
var ErrCookieMissing = errors.New("session cookie missing")

// Manager writes and reads the signed, httpOnly session cookies. The
// cookie value is the token plus an HMAC signature, so a tampered
// cookie is rejected before any JWT parsing happens.
type Manager struct {
	signer service.CookieSigner
}

// NewManager is the constructor for Manager.
func NewManager(signer service.CookieSigner) *Manager {
	return &Manager{signer: signer}
}

// SetAccess cookies a fresh access token with max-age equal to its TTL.
func (m *Manager) SetAccess(c echo.Context, token string, ttl time.Duration) {
	m.set(c, AccessToken, token, ttl)
}

// SetRefresh cookies a fresh refresh token with max-age equal to its TTL.
func (m *Manager) SetRefresh(c echo.Context, token string, ttl time.Duration) {
	m.set(c, RefreshToken, token, ttl)
}

// Clear expires both session cookies.
func (m *Manager) Clear(c echo.Context) {
	for _, name := range []string{AccessToken, RefreshToken} {
		c.SetCookie(&http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteStrictMode,
		})
	}
}

// Read returns the verified token carried by the named cookie.
// ErrCookieMissing when absent; a signature failure surfaces from the signer.
func (m *Manager) Read(c echo.Context, name string) (string, error) {
	cookie, err := c.Cookie(name)
	if err != nil {
		return "", ErrCookieMissing
	}

	token, err := m.signer.Verify(cookie.Value)
	if err != nil {
		return "", errors.Wrap(err, "cookie signature check failed")
	}

	return token, nil
}

func (m *Manager) set(c echo.Context, name, token string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    m.signer.Sign(token),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}
