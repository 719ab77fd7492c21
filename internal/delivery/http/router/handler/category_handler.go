package handler

import (
	"log/slog"
	"net/http"

	"dealradar/internal/delivery/http/response"
	"dealradar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for taxonomy handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

type createCategoryRequest struct {
	Name  string `json:"name" validate:"required"`
	Image string `json:"image"`
}

type createSubCategoryRequest struct {
	Name       string `json:"name" validate:"required"`
	CategoryID string `json:"categoryId" validate:"required"`
	Image      string `json:"image"`
}

// CreateCategory handles the top-level category creation request.
func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), &usecase.CreateCategoryInput{
		Name:  req.Name,
		Image: req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created successfully")
}

// ListCategories returns the whole top level of the taxonomy.
func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "Categories listed successfully")
}

// UpdateCategory handles the partial category update request.
func (h *CategoryHandler) UpdateCategory(c echo.Context) error {
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

	category, err := h.uc.UpdateCategory(c.Request().Context(), id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "Category updated successfully")
}

// DeleteCategory removes the category and its subcategories.
func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Category deleted successfully")
}

// CreateSubCategory handles the subcategory creation request.
func (h *CategoryHandler) CreateSubCategory(c echo.Context) error {
	var req createSubCategoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "invalid subcategory input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	categoryID, err := objectIDParam(req.CategoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	subCategory, err := h.uc.CreateSubCategory(c.Request().Context(), &usecase.CreateSubCategoryInput{
		Name:       req.Name,
		CategoryID: categoryID,
		Image:      req.Image,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, subCategory, "Subcategory created successfully")
}

// ListSubCategories returns a category's subcategories.
func (h *CategoryHandler) ListSubCategories(c echo.Context) error {
	categoryID, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	subCategories, err := h.uc.ListSubCategories(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subCategories, "Subcategories listed successfully")
}

// UpdateSubCategory handles the partial subcategory update request.
func (h *CategoryHandler) UpdateSubCategory(c echo.Context) error {
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

	subCategory, err := h.uc.UpdateSubCategory(c.Request().Context(), id, fields)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, subCategory, "Subcategory updated successfully")
}

// DeleteSubCategory removes a subcategory.
func (h *CategoryHandler) DeleteSubCategory(c echo.Context) error {
	id, err := objectIDParam(c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.DeleteSubCategory(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Subcategory deleted successfully")
}
