package jsonfile

import (
	"context"
	"sort"
	"strings"
	"time"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/repository"

	"github.com/google/uuid"
)

// customerRepository implements repository.CustomerRepository over the users
// collection file.
type customerRepository struct {
	store *Store
	inTx  bool
}

// NewCustomerRepository is the constructor for customerRepository.
func NewCustomerRepository(store *Store) repository.CustomerRepository {
	return &customerRepository{store: store}
}

func (repo *customerRepository) unlock() func() {
	if repo.inTx {
		return func() {}
	}
	repo.store.mu.Lock()

	return repo.store.mu.Unlock
}

// List returns the full ledger, most recently updated first.
func (repo *customerRepository) List(_ context.Context) ([]*entity.Customer, error) {
	defer repo.unlock()()

	records, err := loadCollection[customerRecord](repo.store, customersFile, "users")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})

	customers := make([]*entity.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, toCustomerDomain(&records[i]))
	}

	return customers, nil
}

// FindByEmail retrieves a customer by their natural key.
func (repo *customerRepository) FindByEmail(_ context.Context, email string) (*entity.Customer, error) {
	defer repo.unlock()()

	records, err := loadCollection[customerRecord](repo.store, customersFile, "users")
	if err != nil {
		return nil, err
	}

	for i := range records {
		if strings.EqualFold(records[i].Email, email) {
			return toCustomerDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrCustomerNotFound
}

// Create appends a new ledger entry.
func (repo *customerRepository) Create(_ context.Context, customer *entity.Customer) error {
	defer repo.unlock()()

	records, err := loadCollection[customerRecord](repo.store, customersFile, "users")
	if err != nil {
		return err
	}

	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	now := time.Now().UTC()
	if customer.CreatedAt.IsZero() {
		customer.CreatedAt = now
	}
	customer.UpdatedAt = now

	records = append(records, fromCustomerDomain(customer))

	return saveCollection(repo.store, customersFile, "users", records)
}

// Update rewrites the stored ledger entry.
func (repo *customerRepository) Update(_ context.Context, customer *entity.Customer) error {
	defer repo.unlock()()

	records, err := loadCollection[customerRecord](repo.store, customersFile, "users")
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == customer.ID {
			customer.UpdatedAt = time.Now().UTC()
			records[i] = fromCustomerDomain(customer)

			return saveCollection(repo.store, customersFile, "users", records)
		}
	}

	return repository.ErrCustomerNotFound
}
