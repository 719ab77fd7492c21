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

// categoryRepository implements repository.CategoryRepository across the
// categories and subcategories collections.
type categoryRepository struct {
	categories    *mongo.Collection
	subCategories *mongo.Collection
}

// NewCategoryRepository is the constructor for categoryRepository.
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &categoryRepository{
		categories:    store.db.Collection(collCategories),
		subCategories: store.db.Collection(collSubCategories),
	}
}

func (r *categoryRepository) FindCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.Category, error) {
	var category entity.Category
	if err := r.categories.FindOne(ctx, bson.M{"_id": id}).Decode(&category); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by id")
	}

	return &category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	cursor, err := r.categories.Find(ctx, bson.M{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	var categories []*entity.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, errors.Wrap(err, "failed to decode categories")
	}

	return categories, nil
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category *entity.Category) error {
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now

	result, err := r.categories.InsertOne(ctx, category)
	if err != nil {
		return errors.Wrap(err, "failed to insert category")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		category.ID = id
	}

	return nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.Category, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var category entity.Category
	err := r.categories.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&category)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to update category")
	}

	return &category, nil
}

func (r *categoryRepository) DeleteCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.categories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete category")
	}
	if result.DeletedCount == 0 {
		return repository.ErrCategoryNotFound
	}

	return nil
}

func (r *categoryRepository) FindSubCategoryByID(ctx context.Context, id primitive.ObjectID) (*entity.SubCategory, error) {
	var subCategory entity.SubCategory
	if err := r.subCategories.FindOne(ctx, bson.M{"_id": id}).Decode(&subCategory); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrSubCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find subcategory by id")
	}

	return &subCategory, nil
}

func (r *categoryRepository) FindSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) ([]*entity.SubCategory, error) {
	cursor, err := r.subCategories.Find(ctx, bson.M{"categoryId": categoryID})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find subcategories by category id")
	}

	var subCategories []*entity.SubCategory
	if err := cursor.All(ctx, &subCategories); err != nil {
		return nil, errors.Wrap(err, "failed to decode subcategories")
	}

	return subCategories, nil
}

func (r *categoryRepository) CreateSubCategory(ctx context.Context, subCategory *entity.SubCategory) error {
	now := time.Now()
	subCategory.CreatedAt = now
	subCategory.UpdatedAt = now

	result, err := r.subCategories.InsertOne(ctx, subCategory)
	if err != nil {
		return errors.Wrap(err, "failed to insert subcategory")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		subCategory.ID = id
	}

	return nil
}

func (r *categoryRepository) UpdateSubCategory(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.SubCategory, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var subCategory entity.SubCategory
	err := r.subCategories.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&subCategory)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrSubCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to update subcategory")
	}

	return &subCategory, nil
}

func (r *categoryRepository) DeleteSubCategory(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.subCategories.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete subcategory")
	}
	if result.DeletedCount == 0 {
		return repository.ErrSubCategoryNotFound
	}

	return nil
}

// DeleteSubCategoriesByCategoryID removes every subcategory of a parent
// category as part of the category delete cascade.
func (r *categoryRepository) DeleteSubCategoriesByCategoryID(ctx context.Context, categoryID primitive.ObjectID) error {
	if _, err := r.subCategories.DeleteMany(ctx, bson.M{"categoryId": categoryID}); err != nil {
		return errors.Wrap(err, "failed to delete subcategories by category id")
	}

	return nil
}
