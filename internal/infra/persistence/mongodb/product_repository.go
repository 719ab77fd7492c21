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

// productRepository implements repository.ProductRepository on the products collection.
type productRepository struct {
	coll *mongo.Collection
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{coll: store.db.Collection(collProducts)}
}

// FindByID retrieves a single product by its unique id.
func (r *productRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Product, error) {
	var product entity.Product
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return &product, nil
}

// FindByBusinessID retrieves all products listed under a business.
func (r *productRepository) FindByBusinessID(ctx context.Context, businessID primitive.ObjectID) ([]*entity.Product, error) {
	cursor, err := r.coll.Find(ctx, bson.M{"businessId": businessID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find products by business id")
	}

	var products []*entity.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode products")
	}

	return products, nil
}

// Create persists a new product.
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	now := time.Now()
	product.CreatedAt = now
	product.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, product)
	if err != nil {
		return errors.Wrap(err, "failed to insert product")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		product.ID = id
	}

	return nil
}

// Update applies a partial field update and returns the updated document.
func (r *productRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Product, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product entity.Product
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return &product, nil
}

// ReplaceQuantity swaps in a new quantity snapshot and appends the
// superseded one to the history in a single write, keeping the
// append-only invariant even under concurrent updates.
func (r *productRepository) ReplaceQuantity(ctx context.Context, id primitive.ObjectID, next entity.Quantity) (*entity.Product, error) {
	current, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := bson.M{
		"$set": bson.M{
			"quantity":  next,
			"updatedAt": time.Now(),
		},
		"$push": bson.M{"quantityHistory": current.Quantity},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product entity.Product
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&product); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to replace product quantity")
	}

	return &product, nil
}

// Delete removes a product.
func (r *productRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	if result.DeletedCount == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

// DeleteByBusinessID removes every product of a business.
func (r *productRepository) DeleteByBusinessID(ctx context.Context, businessID primitive.ObjectID) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"businessId": businessID}); err != nil {
		return errors.Wrap(err, "failed to delete products by business id")
	}

	return nil
}

// DeleteByUserID removes every product owned by a user.
func (r *productRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return errors.Wrap(err, "failed to delete products by user id")
	}

	return nil
}
