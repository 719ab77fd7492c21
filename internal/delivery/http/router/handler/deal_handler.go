package handler

import (
	"log/slog"
	"net/http"
	"time"

	"dealradar/internal/delivery/http/middleware"
	"dealradar/internal/delivery/http/response"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DealHandler holds dependencies for deal-related handlers.
type DealHandler struct {
	uc     usecase.DealUsecase
	logger *slog.Logger
}

// NewDealHandler is the constructor for DealHandler, injected by Fx.
func NewDealHandler(uc usecase.DealUsecase, logger *slog.Logger) *DealHandler {
	return &DealHandler{uc: uc, logger: logger}
}

type createDealRequest struct {
	Name           string    `json:"name" validate:"required"`
	StartDate      time.Time `json:"startDate" validate:"required"`
	EndDate        time.Time `json:"endDate" validate:"required"`
	Description    string    `json:"description"`
	MarketPrice    float64   `json:"marketPrice" validate:"min=0"`
	OfferPrice     float64   `json:"offerPrice" validate:"min=0"`
	HomeDelivery   bool      `json:"homeDelivery"`
	ReturnAccepted bool      `json:"returnAccepted"`
	ProductID      string    `json:"productId" validate:"required"`
	BusinessID     string    `json:"businessId" validate:"required"`
	UserID         string    `json:"userId" validate:"required"`
}

// discoverRequest is deliberately carried in the GET body: the filter is
// structured and the clients already send it that way.
type discoverRequest struct {
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	RadiusKm  float64 `json:"radiusKm" validate:"min=0"`
}

// Create handles the deal posting request.
func (h *DealHandler) Create(c echo.Context) error {
	var req createDealRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid deal input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	productID, err := objectIDParam(req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}
	businessID, err := objectIDParam(req.BusinessID)
	if err != nil {
		return errors.WithStack(err)
	}
	userID, err := objectIDParam(req.UserID)
	if err != nil {
		return errors.WithStack(err)
	}

	deal, err := h.uc.Create(c.Request().Context(), &usecase.CreateDealInput{
		Name:           req.Name,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Description:    req.Description,
		MarketPrice:    req.MarketPrice,
		OfferPrice:     req.OfferPrice,
		HomeDelivery:   req.HomeDelivery,
		ReturnAccepted: req.ReturnAccepted,
		ProductID:      productID,
		BusinessID:     businessID,
		UserID:         userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, deal, "Deal created successfully")
}

// Update handles the partial deal update request.
func (h *DealHandler) Update(c echo.Context) error {
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

	deal, err := h.uc.Update(c.Request().Context(), id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, deal, "Deal updated successfully")
}

// Delete removes a deal.
func (h *DealHandler) Delete(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Deal deleted successfully")
}

// Discover answers the personalized nearby-deals query for the
// authenticated user.
func (h *DealHandler) Discover(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(primitive.ObjectID)
	if !ok {
		return response.Unauthorized(c, "missing session identity")
	}

	var req discoverRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid discovery filter")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	rows, err := h.uc.Discover(c.Request().Context(), &usecase.DiscoverInput{
		UserID:    userID,
		Longitude: req.Longitude,
		Latitude:  req.Latitude,
		RadiusKm:  req.RadiusKm,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, rows, "Deals discovered successfully")
}
