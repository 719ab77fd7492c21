package repository

import (
	"context"
	"errors"

	"dealradar/internal/domain/entity"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrBusinessNotFound is returned when a business is not found.
var ErrBusinessNotFound = errors.New("business not found")

// DiscoveryMinDistanceMeters is the fixed lower bound of the discovery
// distance window, kept to avoid self-matches. $geoNear treats minDistance
// as inclusive, so a business at exactly this distance is still returned;
// a requested window whose outer bound does not exceed it is empty.
const DiscoveryMinDistanceMeters = 150.0

// DiscoveryQuery is the input of the deal-discovery aggregation.
type DiscoveryQuery struct {
	Near        entity.GeoPoint
	MaxMeters   float64
	InterestIDs []primitive.ObjectID
}

// BusinessRepository defines the standard operations for business persistence.
type BusinessRepository interface {
	// FindByID retrieves a single business by its unique id.
	FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error)

	// FindByUserID retrieves all businesses owned by a user.
	FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error)

	// Create persists a new business.
	Create(ctx context.Context, business *entity.Business) error

	// Update applies a partial field update to an existing business.
	Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error)

	// Delete removes a business. Product cascade is orchestrated by the usecase.
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DeleteByUserID removes every business owned by a user and returns
	// the ids of the removed documents so dependent cascades can run.
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)

	// DiscoverDeals runs the geospatial + interest aggregation: nearby
	// businesses within [DiscoveryMinDistanceMeters, MaxMeters] whose
	// subcategory is in InterestIDs, fanned out per deal with the deal's
	// product attached. An empty result is a valid outcome.
	DiscoverDeals(ctx context.Context, q DiscoveryQuery) ([]*entity.DiscoveredDeal, error)
}
