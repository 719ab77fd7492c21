package mongodb

import (
	"context"
	"strings"
	"time"

	"dealradar/internal/domain/entity"
	"dealradar/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// userRepository implements repository.UserRepository on the users collection.
type userRepository struct {
	coll *mongo.Collection
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{coll: store.db.Collection(collUsers)}
}

// FindByID retrieves a single user by their unique id.
func (r *userRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return &user, nil
}

// FindByEmail retrieves a single user by their email address.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return &user, nil
}

// FindByReferralCode retrieves the user owning a referral code.
func (r *userRepository) FindByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var user entity.User
	if err := r.coll.FindOne(ctx, bson.M{"referalCode": code}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by referral code")
	}

	return &user, nil
}

// Create persists a new user. Unique-index clashes are translated to
// the duplicate sentinels so the usecase can answer with a conflict.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.coll.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeySentinel(err)
		}

		return errors.Wrap(err, "failed to insert user")
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = id
	}

	return nil
}

// Update applies a partial field update and returns the updated document.
func (r *userRepository) Update(ctx context.Context, id primitive.ObjectID, fields map[string]any) (*entity.User, error) {
	fields["updatedAt"] = time.Now()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user entity.User
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": fields}, opts).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeySentinel(err)
		}

		return nil, errors.Wrap(err, "failed to update user")
	}

	return &user, nil
}

// Delete removes a user.
func (r *userRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if result.DeletedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// IncrementBounty atomically adds delta to the user's bounty counter.
func (r *userRepository) IncrementBounty(ctx context.Context, id primitive.ObjectID, delta int) error {
	result, err := r.coll.UpdateByID(ctx, id, bson.M{"$inc": bson.M{"bounty": delta}})
	if err != nil {
		return errors.Wrap(err, "failed to increment bounty")
	}
	if result.MatchedCount == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

// duplicateKeySentinel maps a unique-index violation onto the field
// that caused it, falling back to the email sentinel.
func duplicateKeySentinel(err error) error {
	if strings.Contains(err.Error(), "phoneNumber") {
		return repository.ErrDuplicatePhone
	}

	return repository.ErrDuplicateEmail
}
