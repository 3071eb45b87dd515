package jsonfile

import (
	"context"
	"time"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/repository"
)

// productRepository implements repository.ProductRepository over the
// products collection file.
type productRepository struct {
	store *Store

	// inTx skips per-call locking when the transaction manager already
	// holds the store lock.
	inTx bool
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{store: store}
}

func (repo *productRepository) unlock() func() {
	if repo.inTx {
		return func() {}
	}
	repo.store.mu.Lock()

	return repo.store.mu.Unlock
}

// List returns all products in insertion order.
func (repo *productRepository) List(_ context.Context) ([]*entity.Product, error) {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return nil, err
	}

	products := make([]*entity.Product, 0, len(records))
	for i := range records {
		products = append(products, toProductDomain(&records[i]))
	}

	return products, nil
}

// FindByID retrieves a product by its catalog id.
func (repo *productRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return toProductDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrProductNotFound
}

// Count returns the catalog size.
func (repo *productRepository) Count(_ context.Context) (int, error) {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return 0, err
	}

	return len(records), nil
}

// Create persists a new product at the end of the collection.
func (repo *productRepository) Create(_ context.Context, product *entity.Product) error {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	product.UpdatedAt = now

	records = append(records, fromProductDomain(product))

	return saveCollection(repo.store, productsFile, "products", records)
}

// Update rewrites the stored product and bumps UpdatedAt.
func (repo *productRepository) Update(_ context.Context, product *entity.Product) error {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == product.ID {
			product.UpdatedAt = time.Now().UTC()
			records[i] = fromProductDomain(product)

			return saveCollection(repo.store, productsFile, "products", records)
		}
	}

	return repository.ErrProductNotFound
}

// Delete hard-removes the product from the collection.
func (repo *productRepository) Delete(_ context.Context, id string) (bool, error) {
	defer repo.unlock()()

	records, err := loadCollection[productRecord](repo.store, productsFile, "products")
	if err != nil {
		return false, err
	}

	kept := records[:0]
	found := false
	for i := range records {
		if records[i].ID == id {
			found = true

			continue
		}
		kept = append(kept, records[i])
	}

	if !found {
		return false, nil
	}

	return true, saveCollection(repo.store, productsFile, "products", kept)
}
