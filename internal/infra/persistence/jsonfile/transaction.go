package jsonfile

import (
	"context"

	"darkstore/internal/domain/repository"
)

// fileTransactionManager implements the domain's TransactionManager over the
// file store. It serializes the unit of work against all other writers by
// holding the store lock for its whole duration; it cannot roll back files
// already rewritten when a later step fails.
type fileTransactionManager struct {
	store *Store
}

// fileRepositoryFactory hands out repositories that rely on the lock already
// held by Execute.
type fileRepositoryFactory struct {
	store *Store
}

// ProductRepo creates a product repository bound to the held lock.
func (f *fileRepositoryFactory) ProductRepo() repository.ProductRepository {
	return &productRepository{store: f.store, inTx: true}
}

// OrderRepo creates an order repository bound to the held lock.
func (f *fileRepositoryFactory) OrderRepo() repository.OrderRepository {
	return &orderRepository{store: f.store, inTx: true}
}

// CustomerRepo creates a customer repository bound to the held lock.
func (f *fileRepositoryFactory) CustomerRepo() repository.CustomerRepository {
	return &customerRepository{store: f.store, inTx: true}
}

// NewTransactionManager is the constructor for fileTransactionManager.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &fileTransactionManager{store: store}
}

// Execute runs the given function with exclusive access to the store.
func (tm *fileTransactionManager) Execute(_ context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	return fn(&fileRepositoryFactory{store: tm.store})
}
