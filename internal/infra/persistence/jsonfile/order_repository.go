package jsonfile

import (
	"context"
	"sort"
	"time"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/repository"

	"github.com/google/uuid"
)

// orderRepository implements repository.OrderRepository over the orders
// collection file.
type orderRepository struct {
	store *Store
	inTx  bool
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(store *Store) repository.OrderRepository {
	return &orderRepository{store: store}
}

func (repo *orderRepository) unlock() func() {
	if repo.inTx {
		return func() {}
	}
	repo.store.mu.Lock()

	return repo.store.mu.Unlock
}

// List returns all orders, newest first.
func (repo *orderRepository) List(_ context.Context) ([]*entity.Order, error) {
	defer repo.unlock()()

	records, err := loadCollection[orderRecord](repo.store, ordersFile, "orders")
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	orders := make([]*entity.Order, 0, len(records))
	for i := range records {
		orders = append(orders, toOrderDomain(&records[i]))
	}

	return orders, nil
}

// FindByID retrieves an order by its unique ID.
func (repo *orderRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Order, error) {
	defer repo.unlock()()

	records, err := loadCollection[orderRecord](repo.store, ordersFile, "orders")
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ID == id {
			return toOrderDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

// FindBySessionRef retrieves the order recorded for a payment session.
func (repo *orderRepository) FindBySessionRef(_ context.Context, sessionRef string) (*entity.Order, error) {
	defer repo.unlock()()

	records, err := loadCollection[orderRecord](repo.store, ordersFile, "orders")
	if err != nil {
		return nil, err
	}

	for i := range records {
		if records[i].ExternalSessionRef == sessionRef {
			return toOrderDomain(&records[i]), nil
		}
	}

	return nil, repository.ErrOrderNotFound
}

// Create appends a new order, refusing a second order for the same session.
func (repo *orderRepository) Create(_ context.Context, order *entity.Order) error {
	defer repo.unlock()()

	records, err := loadCollection[orderRecord](repo.store, ordersFile, "orders")
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ExternalSessionRef == order.ExternalSessionRef {
			return repository.ErrSessionAlreadyRecorded
		}
	}

	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	now := time.Now().UTC()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	records = append(records, fromOrderDomain(order))

	return saveCollection(repo.store, ordersFile, "orders", records)
}

// UpdateStatus persists payment status and fulfillment changes.
func (repo *orderRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.OrderStatus, fulfillment entity.FulfillmentStatus) error {
	defer repo.unlock()()

	records, err := loadCollection[orderRecord](repo.store, ordersFile, "orders")
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].ID == id {
			records[i].Status = string(status)
			records[i].Fulfillment = string(fulfillment)
			records[i].UpdatedAt = time.Now().UTC()

			return saveCollection(repo.store, ordersFile, "orders", records)
		}
	}

	return repository.ErrOrderNotFound
}
