package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"darkstore/internal/domain/entity"
	"darkstore/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	return store
}

func sampleProduct(id string) *entity.Product {
	return &entity.Product{
		ID:       id,
		Name:     "Trail Mug " + id,
		Price:    decimal.NewFromFloat(19.99),
		Stock:    5,
		Category: "kitchen",
		Brand:    "darkstore",
		MetaTags: []string{"mug", "camping"},
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleProduct("p1")))
	require.NoError(t, repo.Create(ctx, sampleProduct("p2")))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.False(t, products[0].CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, "Trail Mug p2", found.Name)

	found.Stock = 0
	found.Discount = 25
	require.NoError(t, repo.Update(ctx, found))

	updated, err := repo.FindByID(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, 0, updated.Stock)
	assert.Equal(t, 25, updated.Discount)
	assert.True(t, decimal.NewFromFloat(14.99).Equal(updated.EffectivePrice()))

	deleted, err := repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, deleted)

	_, err = repo.FindByID(ctx, "p1")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestProductRepository_MissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store)

	products, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepository_FileFormat(t *testing.T) {
	store := newTestStore(t)
	repo := NewProductRepository(store)

	require.NoError(t, repo.Create(context.Background(), sampleProduct("p1")))

	raw, err := os.ReadFile(filepath.Join(store.dir, productsFile))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products"`)
	assert.Contains(t, string(raw), `"p1"`)
}

func sampleOrder(sessionRef string) *entity.Order {
	return &entity.Order{
		ExternalSessionRef: sessionRef,
		CustomerEmail:      "jo@example.com",
		CustomerName:       "Jo",
		Items: []entity.OrderItem{
			{
				ProductID:   "p1",
				ProductName: "Trail Mug",
				Quantity:    2,
				UnitPrice:   decimal.NewFromFloat(19.99),
				LineTotal:   decimal.NewFromFloat(39.98),
			},
		},
		Total:       decimal.NewFromFloat(39.98),
		Currency:    "usd",
		Status:      entity.OrderStatusCompleted,
		Fulfillment: entity.FulfillmentUnfulfilled,
	}
}

func TestOrderRepository_CreateRejectsDuplicateSession(t *testing.T) {
	store := newTestStore(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	first := sampleOrder("cs_123")
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEqual(t, uuid.Nil, first.ID)

	err := repo.Create(ctx, sampleOrder("cs_123"))
	assert.ErrorIs(t, err, repository.ErrSessionAlreadyRecorded)

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderRepository_FindBySessionRef(t *testing.T) {
	store := newTestStore(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, sampleOrder("cs_123")))

	order, err := repo.FindBySessionRef(ctx, "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", order.CustomerEmail)
	assert.True(t, decimal.NewFromFloat(39.98).Equal(order.Total))

	_, err = repo.FindBySessionRef(ctx, "cs_999")
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	store := newTestStore(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	order := sampleOrder("cs_123")
	require.NoError(t, repo.Create(ctx, order))

	err := repo.UpdateStatus(ctx, order.ID, entity.OrderStatusCompleted, entity.FulfillmentShipped)
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.FulfillmentShipped, reloaded.Fulfillment)

	err = repo.UpdateStatus(ctx, uuid.New(), entity.OrderStatusCancelled, entity.FulfillmentUnfulfilled)
	assert.ErrorIs(t, err, repository.ErrOrderNotFound)
}

func TestCustomerRepository_UpsertFlow(t *testing.T) {
	store := newTestStore(t)
	repo := NewCustomerRepository(store)
	ctx := context.Background()

	customer := &entity.Customer{
		Email:      "jo@example.com",
		Name:       "Jo",
		TotalSpent: decimal.Zero,
	}
	require.NoError(t, repo.Create(ctx, customer))
	assert.NotEqual(t, uuid.Nil, customer.ID)

	found, err := repo.FindByEmail(ctx, "JO@example.com")
	require.NoError(t, err)
	assert.Equal(t, customer.ID, found.ID)

	found.ApplyOrder(sampleOrder("cs_1"))
	found.ApplyOrder(sampleOrder("cs_2"))
	require.NoError(t, repo.Update(ctx, found))

	reloaded, err := repo.FindByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.TotalOrders)
	assert.True(t, decimal.NewFromFloat(79.96).Equal(reloaded.TotalSpent))

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrCustomerNotFound)
}

func TestTransactionManager_SharesLockAcrossRepos(t *testing.T) {
	store := newTestStore(t)
	tm := NewTransactionManager(store)
	ctx := context.Background()

	err := tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.OrderRepo().Create(ctx, sampleOrder("cs_1")); err != nil {
			return err
		}

		return factory.CustomerRepo().Create(ctx, &entity.Customer{Email: "jo@example.com"})
	})
	require.NoError(t, err)

	orders, err := NewOrderRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	customers, err := NewCustomerRepository(store).List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
}
