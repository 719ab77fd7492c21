package repository

import (
	"context"
	"errors"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for product persistence.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error)

	// FindByBusinessID retrieves all products listed under a business.
	FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error)

	// Create persists a new product.
	Create(ctx context.Context, product *entity.Product) error

	// Update applies a partial field update to an existing product.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Product, error)

	// ReplaceQuantity swaps in a new quantity snapshot and appends the
	// superseded one to the append-only history in the same write.
	ReplaceQuantity(ctx context.Context, id primitive.ObjectID, next entity.Quantity) (*entity.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeleteByBusinessID removes every product of a business.
	DeleteByBusinessID(ctx context.Context, businessID primitive.ObjectID) error

	// DeleteByUserID removes every product owned by a user.
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}
