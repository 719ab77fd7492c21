// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"dealradar/internal/delivery/http/cookies"
	"dealradar/internal/delivery/http/response"
	"dealradar/internal/domain/entity"
	"dealradar/internal/domain/service"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc       usecase.UserUsecase
	tokenSvc service.TokenService
	cookies  *cookies.Manager
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, tokenSvc service.TokenService, cookieManager *cookies.Manager, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:       uc,
		tokenSvc: tokenSvc,
		cookies:  cookieManager,
		logger:   logger,
	}
}

type registerUserRequest struct {
	Name          string                   `json:"name" validate:"required"`
	Email         string                   `json:"email" validate:"required,email"`
	PhoneNumber   string                   `json:"phoneNumber" validate:"required"`
	Password      string                   `json:"password" validate:"required,min=8"`
	CountryCode   string                   `json:"countryCode"`
	ImeiNumber    string                   `json:"imeiNumber"`
	DeviceToken   string                   `json:"deviceToken"`
	ReferredBy    string                   `json:"referredBy"`
	Longitude     float64                  `json:"longitude"`
	Latitude      float64                  `json:"latitude"`
	Interests     []string                 `json:"interestArray"`
	Notifications entity.NotificationOptIn `json:"notifications"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	interests, err := objectIDs(req.Interests)
	if err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Password:      req.Password,
		CountryCode:   req.CountryCode,
		ImeiNumber:    req.ImeiNumber,
		DeviceToken:   req.DeviceToken,
		ReferredBy:    req.ReferredBy,
		Longitude:     req.Longitude,
		Latitude:      req.Latitude,
		Interests:     interests,
		Notifications: req.Notifications,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.User, "User registered successfully")
}

// Login handles the user login request and cookies the token pair.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.cookies.SetAccess(c, output.AccessToken, h.tokenSvc.AccessTTL())
	h.cookies.SetRefresh(c, output.RefreshToken, h.tokenSvc.RefreshTTL())

	return response.Success(c, http.StatusOK, output.User, "Login successful")
}

// Logout clears the session cookies. Stateless tokens have nothing to
// revoke server-side.
func (h *UserHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// Update handles the partial user update request.
func (h *UserHandler) Update(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var raw map[string]any
	if err := c.Bind(&raw); err != nil {
		return response.BindingError(c, "invalid update input")
	}

	fields, err := sanitizeUpdate(raw)
	if err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// Delete removes the user and everything they own.
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
