package handler

import (
	"log/slog"
	"net/http"

	"dealradar/internal/delivery/http/response"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BusinessHandler holds dependencies for business-related handlers.
type BusinessHandler struct {
	uc     usecase.BusinessUsecase
	logger *slog.Logger
}

// NewBusinessHandler is the constructor for BusinessHandler, injected by Fx.
func NewBusinessHandler(uc usecase.BusinessUsecase, logger *slog.Logger) *BusinessHandler {
	return &BusinessHandler{uc: uc, logger: logger}
}

type createBusinessRequest struct {
	Name           string   `json:"name" validate:"required"`
	UserID         string   `json:"userId" validate:"required"`
	OpeningTime    string   `json:"openingTime"`
	ClosingTime    string   `json:"closingTime"`
	PhoneNumber    string   `json:"phoneNumber"`
	Email          string   `json:"email" validate:"omitempty,email"`
	Longitude      float64  `json:"longitude"`
	Latitude       float64  `json:"latitude"`
	UpiID          string   `json:"upiId"`
	ManagerContact string   `json:"managerContact"`
	CategoryID     string   `json:"categoryId" validate:"required"`
	SubCategoryID  string   `json:"subCategoryId" validate:"required"`
	Brands         []string `json:"brands"`
}

// Create handles the business registration request.
func (h *BusinessHandler) Create(c echo.Context) error {
	var req createBusinessRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid business input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	userID, err := objectIDParam(req.UserID)
	if err != nil {
		return errors.WithStack(err)
	}
	categoryID, err := objectIDParam(req.CategoryID)
	if err != nil {
		return errors.WithStack(err)
	}
	subCategoryID, err := objectIDParam(req.SubCategoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	business, err := h.uc.Create(c.Request().Context(), &usecase.CreateBusinessInput{
		Name:           req.Name,
		UserID:         userID,
		OpeningTime:    req.OpeningTime,
		ClosingTime:    req.ClosingTime,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		Longitude:      req.Longitude,
		Latitude:       req.Latitude,
		UpiID:          req.UpiID,
		ManagerContact: req.ManagerContact,
		CategoryID:     categoryID,
		SubCategoryID:  subCategoryID,
		Brands:         req.Brands,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, business, "Business registered successfully")
}

// Update handles the partial business update request.
func (h *BusinessHandler) Update(c echo.Context) error {
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

	business, err := h.uc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, business, "Business updated successfully")
}

// Delete removes the business and its products.
func (h *BusinessHandler) Delete(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Business deleted successfully")
}

// PaymentQR streams the business's UPI payment QR as a PNG.
func (h *BusinessHandler) PaymentQR(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	png, err := h.uc.PaymentQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
