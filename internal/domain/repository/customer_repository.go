package repository

import (
	"context"
	"errors"

	"darkstore/internal/domain/entity"
)

// ErrCustomerNotFound is a domain-specific error returned when a customer is not found.
var ErrCustomerNotFound = errors.New("customer not found")

// CustomerRepository defines the standard operations for the customer ledger.
type CustomerRepository interface {
	// List returns all customers.
	List(ctx context.Context) ([]*entity.Customer, error)

	// FindByEmail retrieves a customer by their natural key.
	FindByEmail(ctx context.Context, email string) (*entity.Customer, error)

	// Create persists a new customer. The implementation assigns the id and timestamps.
	Create(ctx context.Context, customer *entity.Customer) error

	// Update persists changes to an existing customer.
	Update(ctx context.Context, customer *entity.Customer) error
}
