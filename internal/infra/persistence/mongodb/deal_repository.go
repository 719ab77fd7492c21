package mongodb

import (
	"context"
	"time"

	"dealradar/internal/domain/entity"
	"dealradar/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dealRepository implements repository.DealRepository on the deals collection.
type dealRepository struct {
	coll *mongo.Collection
}

// NewDealRepository is the constructor for dealRepository.
func NewDealRepository(store *Store) repository.DealRepository {
	return &dealRepository{coll: store.db.Collection(collDeals)}
}

// FindByID retrieves a single deal by its unique id.
func (r *dealRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Deal, error) {
	var deal entity.Deal
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&deal); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDealNotFound
		}

		return nil, errors.Wrap(err, "failed to find deal by id")
	}

	return &deal, nil
}

// FindByBusinessID retrieves all deals posted by a business.
func (r *dealRepository) FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Deal, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find deals by business id")
	}

	var deals []*entity.Deal
	if err := cursor.All(ctx, &deals); err != nil {
		return nil, errors.Wrap(err, "failed to decode deals")
	}

	return deals, nil
}

// Create persists a new deal.
func (r *dealRepository) Create(ctx context.Context, deal *entity.Deal) error {
	now := time.Now()
	deal.CreatedAt = now
	deal.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, deal)
	if err != nil {
		return errors.Wrap(err, "failed to insert deal")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		deal.ID = id
	}

	return nil
}

// Update applies a partial field update and returns the updated document.
func (r *dealRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Deal, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var deal entity.Deal
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&deal)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrDealNotFound
		}

		return nil, errors.Wrap(err, "failed to update deal")
	}

	return &deal, nil
}

// Delete removes a deal.
func (r *dealRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete deal")
	}
	if result.DeletedCount == 0 {
		return repository.ErrDealNotFound
	}

	return nil
}
