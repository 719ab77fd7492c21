package mongodb

import (
	"context"

	"dealradar/config"
	"dealradar/internal/domain/repository"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
)

// transactionManager runs multi-collection cascades. When cascades are
// configured as transactional, the whole callback executes inside a
// session transaction; otherwise it runs as plain sequential writes,
// matching deployments without a replica set.
type transactionManager struct {
	store         *Store
	transactional bool
}

// NewTransactionManager is the constructor for transactionManager.
func NewTransactionManager(store *Store, cfg *config.Config) repository.TransactionManager {
	return &transactionManager{
		store:         store,
		transactional: cfg.Cascade.Transactional,
	}
}

func (m *transactionManager) Execute(ctx context.Context, fn func(txCtx context.Context, repos repository.RepositoryFactory) error) error {
	factory := &repositoryFactory{store: m.store}

	if !m.transactional {
		return fn(ctx, factory)
	}

	session, err := m.store.client.StartSession()
	if err != nil {
		return errors.Wrap(err, "failed to start session")
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (any, error) {
		return nil, fn(sessCtx, factory)
	})

	return errors.WithStack(err)
}

// repositoryFactory hands out repositories bound to the shared store.
// The transaction is carried by the context, so the same instances work
// inside and outside a session.
type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) Users() repository.UserRepository {
	return NewUserRepository(f.store)
}

func (f *repositoryFactory) Businesses() repository.BusinessRepository {
	return NewBusinessRepository(f.store)
}

func (f *repositoryFactory) Products() repository.ProductRepository {
	return NewProductRepository(f.store)
}

func (f *repositoryFactory) Deals() repository.DealRepository {
	return NewDealRepository(f.store)
}

func (f *repositoryFactory) Categories() repository.CategoryRepository {
	return NewCategoryRepository(f.store)
}
