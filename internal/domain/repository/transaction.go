package repository

import "context"

// RepositoryFactory hands out repository instances bound to one transaction.
type RepositoryFactory interface {
	ProductRepo() ProductRepository
	OrderRepo() OrderRepository
	CustomerRepo() CustomerRepository
}

// TransactionManager runs a unit of work atomically where the backing store
// supports it. The jsonfile implementation only serializes writers; it cannot
// roll back a partially applied unit of work.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(repoFactory RepositoryFactory) error) error
}
