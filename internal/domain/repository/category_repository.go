package repository

import (
	"context"
	"errors"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Domain-specific errors for taxonomy persistence.
var (
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrSubCategoryNotFound is returned when a subcategory is not found.
	ErrSubCategoryNotFound = errors.New("subcategory not found")
)

// CategoryRepository covers both levels of the taxonomy. They share one
// implementation because every subcategory mutation touches its parent's
// cascade semantics.
type CategoryRepository interface {
	// FindCategoryByID retrieves a single category by its unique id.
	FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error)

	// ListCategories retrieves every category.
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	// CreateCategory persists a new category.
	CreateCategory(ctx context.Context, category *entity.Category) error

	// UpdateCategory applies a partial field update to a category.
	UpdateCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error)

	// DeleteCategory removes a category. Subcategory cascade is
	// orchestrated by the usecase.
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	// FindSubCategoryByID retrieves a single subcategory by its unique id.
	FindSubCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.SubCategory, error)

	// FindSubCategoriesByCategoryID retrieves all children of a category.
	FindSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error)

	// CreateSubCategory persists a new subcategory.
	CreateSubCategory(ctx context.Context, sub *entity.SubCategory) error

	// UpdateSubCategory applies a partial field update to a subcategory.
	UpdateSubCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error)

	// DeleteSubCategory removes a subcategory.
	DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error

	// DeleteSubCategoriesByCategoryID removes every child of a category.
	DeleteSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) error
}
