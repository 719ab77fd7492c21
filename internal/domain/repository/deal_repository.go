package repository

import (
	"context"
	"errors"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDealNotFound is returned when a deal is not found.
var ErrDealNotFound = errors.New("deal not found")

// DealRepository defines the standard operations for deal persistence.
type DealRepository interface {
	// FindByID retrieves a single deal by its unique id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error)

	// FindByBusinessID retrieves all deals posted by a business.
	FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Deal, error)

	// Create persists a new deal.
	Create(ctx context.Context, deal *entity.Deal) error

	// Update applies a partial field update to an existing deal.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error)

	// Delete removes a deal.
	Delete(ctx context.Context, id primitive.ObjectID) error
}
