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

// businessRepository implements repository.BusinessRepository on the
// businesses collection, including the discovery aggregation.
type businessRepository struct {
	coll *mongo.Collection
}

// NewBusinessRepository is the constructor for businessRepository.
func NewBusinessRepository(store *Store) repository.BusinessRepository {
	return &businessRepository{coll: store.db.Collection(collBusinesses)}
}

// FindByID retrieves a single business by its unique id.
func (r *businessRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Business, error) {
	var business entity.Business
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&business); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to find business by id")
	}

	return &business, nil
}

// FindByUserID retrieves all businesses owned by a user.
func (r *businessRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) ([]*entity.Business, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find businesses by user id")
	}

	var businesses []*entity.Business
	if err := cursor.All(ctx, &businesses); err != nil {
		return nil, errors.Wrap(err, "failed to decode businesses")
	}

	return businesses, nil
}

// Create persists a new business.
func (r *businessRepository) Create(ctx context.Context, business *entity.Business) error {
	now := time.Now()
	business.CreatedAt = now
	business.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, business)
	if err != nil {
		return errors.Wrap(err, "failed to insert business")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		business.ID = id
	}

	return nil
}

// Update applies a partial field update and returns the updated document.
func (r *businessRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Business, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var business entity.Business
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&business)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrBusinessNotFound
		}

		return nil, errors.Wrap(err, "failed to update business")
	}

	return &business, nil
}

// Delete removes a business.
func (r *businessRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete business")
	}
	if result.DeletedCount == 0 {
		return repository.ErrBusinessNotFound
	}

	return nil
}

// DeleteByUserID removes every business owned by a user and returns the
// removed ids for dependent cascades.
func (r *businessRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, errors.Wrap(err, "failed to list businesses for cascade")
	}

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "failed to decode business ids")
	}

	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID)
	}

	if len(ids) == 0 {
		return nil, nil
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}}); err != nil {
		return nil, errors.Wrap(err, "failed to delete businesses by user id")
	}

	return ids, nil
}

// DiscoverDeals runs the discovery aggregation. Stage order follows the
// index: $geoNear narrows by the 2dsphere index first, then the more
// selective interest match runs on the small remaining slice.
func (r *businessRepository) DiscoverDeals(ctx context.Context, q repository.DiscoveryQuery) ([]*entity.DiscoveredDeal, error) {
	pipeline := discoveryPipeline(q)

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "failed to run discovery aggregation")
	}

	var rows []*entity.DiscoveredDeal
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode discovery rows")
	}

	return rows, nil
}

// discoveryPipeline builds the aggregate stages:
//
//	$geoNear: spherical distance window, writes distanceMeters
//	$match: business subcategory in the user's interest set
//	$replaceWith: reshape to {business, distanceMeters}
//	$lookup/$unwind deals: inner-join fan-out, one row per (business, deal)
//	$lookup/$unwind product: left-join the deal's product onto the row
func discoveryPipeline(q repository.DiscoveryQuery) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$geoNear", Value: bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: entity.GeoPointType},
				{Key: "coordinates", Value: q.Near.Coordinates},
			}},
			{Key: "key", Value: "geoLocation"},
			{Key: "distanceField", Value: "distanceMeters"},
			{Key: "minDistance", Value: repository.DiscoveryMinDistanceMeters},
			{Key: "maxDistance", Value: q.MaxMeters},
			{Key: "spherical", Value: true},
		}}},
		bson.D{{Key: "$match", Value: bson.D{
			{Key: "subCategoryId", Value: bson.D{{Key: "$in", Value: q.InterestIDs}}},
		}}},
		bson.D{{Key: "$replaceWith", Value: bson.D{
			{Key: "business", Value: "$$ROOT"},
			{Key: "distanceMeters", Value: "$distanceMeters"},
		}}},
		bson.D{{Key: "$unset", Value: "business.distanceMeters"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collDeals},
			{Key: "localField", Value: "business._id"},
			{Key: "foreignField", Value: "businessId"},
			{Key: "as", Value: "deal"},
		}}},
		// No preserveNullAndEmptyArrays: a business without deals yields no rows.
		bson.D{{Key: "$unwind", Value: "$deal"}},
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: collProducts},
			{Key: "localField", Value: "deal.productId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "product"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$product"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}
