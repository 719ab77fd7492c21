package usecase

import (
	"context"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateCategoryInput defines the data for a new top-level category.
type CreateCategoryInput struct {
	Name  string
	Image string
}

// CreateSubCategoryInput defines the data for a new subcategory.
type CreateSubCategoryInput struct {
	Name       string
	CategoryID primitive.ObjectID
	Image      string
}

// CategoryUsecase manages the two-level category taxonomy.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	UpdateCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error)
	// DeleteCategory removes the category together with its subcategories.
	DeleteCategory(ctx context.Context, id primitive.ObjectID) error

	CreateSubCategory(ctx context.Context, input *CreateSubCategoryInput) (*entity.SubCategory, error)
	ListSubCategories(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error)
	UpdateSubCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error)
	DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error
}
