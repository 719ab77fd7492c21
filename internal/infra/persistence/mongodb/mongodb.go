// Package mongodb contains the concrete implementation of the
// persistence layer on the MongoDB document store.
package mongodb

import (
	"context"
	"log/slog"
	"time"

	"dealradar/config"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/fx"
)

// Collection names of the five stores.
const (
	collUsers         = "users"
	collBusinesses    = "businesses"
	collProducts      = "products"
	collDeals         = "deals"
	collCategories    = "categories"
	collSubCategories = "subcategories"
)

const connectTimeout = 10 * time.Second

// Store owns the client handle. It is constructed once at startup and
// closed on shutdown; nothing else in the process holds the client.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Params holds dependencies for the store, injected by Fx.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New connects to the document store, verifies the connection, and
// ensures the indexes the system relies on. A failed initial connection
// is fatal for the process.
func New(params Params) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(params.Config.Mongo.URI))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to document store")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, errors.Wrap(err, "failed to ping document store")
	}

	store := &Store{
		client: client,
		db:     client.Database(params.Config.Mongo.Database),
	}

	if err := store.ensureIndexes(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to ensure indexes")
	}

	params.Logger.Info("Connected to document store",
		slog.String("database", params.Config.Mongo.Database),
	)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Disconnecting from document store")

			return errors.WithStack(client.Disconnect(ctx))
		},
	})

	return store, nil
}

// ensureIndexes creates the unique and geospatial indexes queries depend on.
func (s *Store) ensureIndexes(ctx context.Context) error {
	userIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "phoneNumber", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := s.db.Collection(collUsers).Indexes().CreateMany(ctx, userIndexes); err != nil {
		return errors.Wrap(err, "create user indexes")
	}

	geoIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "geoLocation", Value: "2dsphere"}},
	}
	if _, err := s.db.Collection(collBusinesses).Indexes().CreateOne(ctx, geoIndex); err != nil {
		return errors.Wrap(err, "create business geo index")
	}

	dealIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "businessId", Value: 1}},
	}
	if _, err := s.db.Collection(collDeals).Indexes().CreateOne(ctx, dealIndex); err != nil {
		return errors.Wrap(err, "create deal index")
	}

	return nil
}
