package middleware

import (
	"log/slog"

	deliverycontext "dealradar/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestContextMiddleware stamps every request with an id and a
// request-scoped logger carrying it, so usecase logs are correlatable.
type RequestContextMiddleware struct {
	logger *slog.Logger
}

// NewRequestContextMiddleware creates a new request context middleware
func NewRequestContextMiddleware(logger *slog.Logger) *RequestContextMiddleware {
	return &RequestContextMiddleware{logger: logger}
}

// Handle attaches the request id and scoped logger to both the echo
// context and the request's context.Context.
func (m *RequestContextMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}

		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		scoped := m.logger.With(slog.String("request_id", requestID))

		ctx := deliverycontext.WithRequestID(c.Request().Context(), requestID)
		ctx = deliverycontext.WithLogger(ctx, scoped)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
