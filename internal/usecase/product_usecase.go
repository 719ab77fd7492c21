package usecase

import (
	"context"
	"time"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateProductInput defines the data required to list a product.
type CreateProductInput struct {
	Name            string
	BrandName       string
	Description     string
	OpeningStock    int
	StockType       string
	Quantity        entity.Quantity
	BatchNo         string
	ManufacturingAt time.Time
	ExpiryAt        time.Time
	UnitMrp         float64
	SellingPrice    float64
	Images          []string
	Attributes      []entity.Attribute
	CountryCode     string
	BusinessID      primitive.ObjectID
	UserID          primitive.ObjectID
}

// UpdateProductInput carries a partial update. When Quantity is set the
// current quantity snapshot is moved to the history before being replaced.
type UpdateProductInput struct {
	Fields   map[string]any
	Quantity *entity.Quantity
}

// ProductUsecase defines the interface for product-related operations.
type ProductUsecase interface {
	Create(ctx context.Context, input *CreateProductInput) (*entity.Product, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)
	FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error)
	Update(ctx context.Context, id primitive.ObjectID, input *UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}
