package handler

import (
	"log/slog"
	"net/http"
	"time"

	"dealradar/internal/delivery/http/response"
	"dealradar/internal/domain/entity"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for product-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, logger: logger}
}

type quantityRequest struct {
	No       int    `json:"no" validate:"required,min=0"`
	BillNo   string `json:"billNo"`
	FirmName string `json:"firmName"`
}

type createProductRequest struct {
	Name            string             `json:"name" validate:"required"`
	BrandName       string             `json:"brandName"`
	Description     string             `json:"description"`
	OpeningStock    int                `json:"openingStock"`
	StockType       string             `json:"stockType"`
	Quantity        quantityRequest    `json:"quantity"`
	BatchNo         string             `json:"batchNo"`
	ManufacturingAt time.Time          `json:"manufacturingDate"`
	ExpiryAt        time.Time          `json:"expiryDate"`
	UnitMrp         float64            `json:"unitMrp"`
	SellingPrice    float64            `json:"sellingPrice"`
	Images          []string           `json:"images"`
	Attributes      []entity.Attribute `json:"attributes"`
	CountryCode     string             `json:"countryCode"`
	BusinessID      string             `json:"businessId" validate:"required"`
	UserID          string             `json:"userId" validate:"required"`
}

type updateProductRequest struct {
	Fields   map[string]any   `json:"fields"`
	Quantity *quantityRequest `json:"quantity"`
}

// Create handles the product listing request.
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid product input")
	}
	if err := c.Validate(&req); err != nil {
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

	product, err := h.uc.Create(c.Request().Context(), &usecase.CreateProductInput{
		Name:            req.Name,
		BrandName:       req.BrandName,
		Description:     req.Description,
		OpeningStock:    req.OpeningStock,
		StockType:       req.StockType,
		Quantity:        req.Quantity.toEntity(),
		BatchNo:         req.BatchNo,
		ManufacturingAt: req.ManufacturingAt,
		ExpiryAt:        req.ExpiryAt,
		UnitMrp:         req.UnitMrp,
		SellingPrice:    req.SellingPrice,
		Images:          req.Images,
		Attributes:      req.Attributes,
		CountryCode:     req.CountryCode,
		BusinessID:      businessID,
		UserID:          userID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product created successfully")
}

// Update handles the partial product update request. A supplied quantity
// replaces the current snapshot and archives the old one.
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid update input")
	}

	input := &usecase.UpdateProductInput{}
	if req.Quantity != nil {
		quantity := req.Quantity.toEntity()
		input.Quantity = &quantity
	}
	if len(req.Fields) > 0 {
		fields, err := sanitizeUpdate(req.Fields)
		if err != nil {
			return errors.WithStack(err)
		}
		input.Fields = fields
	}

	product, err := h.uc.Update(c.Request().Context(), id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated successfully")
}

// Delete removes a product.
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Product deleted successfully")
}

func (q quantityRequest) toEntity() entity.Quantity {
	return entity.Quantity{
		No:       q.No,
		BillNo:   q.BillNo,
		FirmName: q.FirmName,
	}
}
