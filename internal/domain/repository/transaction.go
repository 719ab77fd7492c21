package repository

import "context"

// TransactionManager defines the interface for running multi-document
// cascades atomically. Whether Execute is actually transactional is an
// explicit configuration choice of the store implementation; either way
// every step's error is surfaced to the caller.
type TransactionManager interface {
	// Execute runs fn, handing it a context bound to the transaction (a
	// session context for stores that support one) and a factory of
	// repositories participating in it. fn returning an error aborts the
	// transaction when one is active.
	Execute(ctx context.Context, fn func(txCtx context.Context, repos RepositoryFactory) error) error
}

// RepositoryFactory provides repository instances that share the
// transaction owned by the surrounding Execute call.
type RepositoryFactory interface {
	Users() UserRepository
	Businesses() BusinessRepository
	Products() ProductRepository
	Deals() DealRepository
	Categories() CategoryRepository
}
