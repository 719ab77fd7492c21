package mongodb

import (
	"context"

	"dealradar/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// existenceChecker answers yes/no existence probes for route-level
// reference checks without decoding full documents.
type existenceChecker struct {
	db *mongo.Database
}

// NewExistenceChecker is the constructor for existenceChecker.
func NewExistenceChecker(store *Store) repository.ExistenceChecker {
	return &existenceChecker{db: store.db}
}

// Exists reports whether a document with field == value is present in
// the collection backing the entity kind.
func (c *existenceChecker) Exists(ctx context.Context, kind repository.EntityKind, field string, value any) (bool, error) {
	coll, err := c.collectionFor(kind)
	if err != nil {
		return false, err
	}

	opts := options.FindOne().SetProjection(bson.M{"_id": 1})

	err = coll.FindOne(ctx, bson.M{field: value}, opts).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}

		return false, errors.Wrap(err, "failed to probe existence")
	}

	return true, nil
}

func (c *existenceChecker) collectionFor(kind repository.EntityKind) (*mongo.Collection, error) {
	switch kind {
	case repository.KindUser:
		return c.db.Collection(collUsers), nil
	case repository.KindBusiness:
		return c.db.Collection(collBusinesses), nil
	case repository.KindProduct:
		return c.db.Collection(collProducts), nil
	case repository.KindDeal:
		return c.db.Collection(collDeals), nil
	case repository.KindCategory:
		return c.db.Collection(collCategories), nil
	case repository.KindSubCategory:
		return c.db.Collection(collSubCategories), nil
	default:
		return nil, errors.WithStack(repository.ErrUnknownEntityKind)
	}
}
