package handler

import (
	"log/slog"
	"net/http"

	"dealradar/internal/delivery/http/cookies"
	"dealradar/internal/delivery/http/response"
	domainerrors "dealradar/internal/domain/errors"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// SessionHandler holds dependencies for session lifecycle handlers.
type SessionHandler struct {
	uc       usecase.SessionUsecase
	tokenSvc service.TokenService
	cookies  *cookies.Manager
	logger   *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(uc usecase.SessionUsecase, tokenSvc service.TokenService, cookieManager *cookies.Manager, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		cookies:  cookieManager,
		logger:   logger,
	}
}

// Rotate replaces the refresh cookie with a freshly minted token,
// resetting the sliding session window. The refresh-presence middleware
// has already stashed the verified raw token on the context.
func (h *SessionHandler) Rotate(c echo.Context) error {
	refreshToken, ok := c.Get(cookies.RefreshToken).(string)
	if !ok || refreshToken == "" {
		return domainerrors.ErrNotAuthenticated.WrapMessage("no refresh token on context")
	}

	output, err := h.uc.RotateRefreshToken(c.Request().Context(), refreshToken)
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetRefresh(c, output.RefreshToken, h.tokenSvc.RefreshTTL())

	return response.Success(c, http.StatusOK, nil, "Session extended successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
