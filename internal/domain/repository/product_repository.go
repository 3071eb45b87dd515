// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"darkstore/internal/domain/entity"
)

// ErrProductNotFound is a domain-specific error returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the standard operations for catalog persistence.
// The application layer depends on this interface, not the concrete implementation.
type ProductRepository interface {
	// List returns all products in insertion order.
	List(ctx context.Context) ([]*entity.Product, error)

	// FindByID retrieves a single product by its id.
	FindByID(ctx context.Context, id string) (*entity.Product, error)

	// Count returns the number of products currently in the catalog.
	Count(ctx context.Context) (int, error)

	// Create persists a new product. The implementation assigns timestamps.
	Create(ctx context.Context, product *entity.Product) error

	// Update persists changes to an existing product and bumps UpdatedAt.
	Update(ctx context.Context, product *entity.Product) error

	// Delete hard-removes the product. It returns false when the id is unknown.
	Delete(ctx context.Context, id string) (bool, error)
}
