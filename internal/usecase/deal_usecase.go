package usecase

import (
	"context"
	"time"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateDealInput defines the data required to post a deal.
type CreateDealInput struct {
	Name           string
	StartDate      time.Time
	EndDate        time.Time
	Description    string
	MarketPrice    float64
	OfferPrice     float64
	HomeDelivery   bool
	ReturnAccepted bool
	ProductID      primitive.ObjectID
	BusinessID     primitive.ObjectID
	UserID         primitive.ObjectID
}

// DiscoverInput defines the personalized discovery filter.
type DiscoverInput struct {
	UserID    primitive.ObjectID
	Longitude float64
	Latitude  float64
	RadiusKm  float64
}

// DealUsecase defines the interface for deal-related operations,
// including the personalized discovery query.
type DealUsecase interface {
	Create(ctx context.Context, input *CreateDealInput) (*entity.Deal, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error)
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Discover returns active deals near a location, filtered to the
	// requesting user's interest set. An empty result is a success.
	Discover(ctx context.Context, input *DiscoverInput) ([]*entity.DiscoveredDeal, error)
}
