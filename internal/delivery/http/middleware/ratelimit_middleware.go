package middleware

import (
	"net/http"

	"dealradar/config"
	"dealradar/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewRateLimiter builds the per-IP request ceiling from configuration.
// Excess requests get a 429 envelope immediately; nothing queues.
func NewRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	rl := cfg.RateLimit

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(rl.Requests) / rl.Window.Seconds()),
		Burst:     rl.Requests,
		ExpiresIn: rl.Window,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, _ error) error {
			return response.Error(c, http.StatusForbidden, "could not identify client")
		},
		DenyHandler: func(c echo.Context, _ string, _ error) error {
			return response.Error(c, http.StatusTooManyRequests, "rate limit exceeded")
		},
	})
}
