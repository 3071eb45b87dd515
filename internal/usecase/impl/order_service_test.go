package impl

import (
	"context"
	"testing"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOrderFixture(t *testing.T) (usecase.OrderUsecase, *testRepos) {
	t.Helper()

	repos := newTestRepos(t)
	orders := NewOrderService(OrderServiceParams{
		TxManager: repos.txManager,
		OrderRepo: repos.orderRepo,
		Logger:    testLogger(),
	})

	return orders, repos
}

func TestRecord_CreatesOrderAndLedgerEntry(t *testing.T) {
	orders, repos := newOrderFixture(t)
	ctx := context.Background()

	dto, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 18000))
	require.NoError(t, err)
	assert.Equal(t, "completed", dto.Status)
	assert.Equal(t, "unfulfilled", dto.Fulfillment)
	assert.InDelta(t, 180.00, dto.Total, 0.001, "18000 cents maps to 180.00")

	customer, err := repos.customerRepo.FindByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, customer.TotalOrders)
	moneyEqual(t, "180", customer.TotalSpent)
	assert.Equal(t, "1 Main St", customer.ShippingAddress.Line1)
}

func TestRecord_AccumulatesLedgerAcrossOrders(t *testing.T) {
	orders, repos := newOrderFixture(t)
	ctx := context.Background()

	_, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 5000))
	require.NoError(t, err)
	_, err = orders.Record(ctx, sessionDetails("cs_2", "jo@example.com", 7500))
	require.NoError(t, err)

	customer, err := repos.customerRepo.FindByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, customer.TotalOrders)
	moneyEqual(t, "125", customer.TotalSpent)

	customers, err := repos.customerRepo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1, "same email must upsert, not duplicate")
}

func TestRecord_IdempotentOnSessionRef(t *testing.T) {
	orders, repos := newOrderFixture(t)
	ctx := context.Background()

	first, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 5000))
	require.NoError(t, err)

	replay, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 5000))
	require.NoError(t, err)
	assert.Equal(t, first.ID, replay.ID)

	all, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	customer, err := repos.customerRepo.FindByEmail(ctx, "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, customer.TotalOrders, "replay must not double-count the ledger")
	moneyEqual(t, "50", customer.TotalSpent)
}

func TestRecord_NoEmailSkipsLedger(t *testing.T) {
	orders, repos := newOrderFixture(t)
	ctx := context.Background()

	_, err := orders.Record(ctx, sessionDetails("cs_1", "", 5000))
	require.NoError(t, err)

	customers, err := repos.customerRepo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestRecord_LineItemPricesFromMinorUnits(t *testing.T) {
	orders, _ := newOrderFixture(t)

	details := sessionDetails("cs_1", "jo@example.com", 9000)
	details.LineItems[0].Quantity = 2
	details.LineItems[0].UnitAmount = 4500

	dto, err := orders.Record(context.Background(), details)
	require.NoError(t, err)
	require.Len(t, dto.Items, 1)
	assert.InDelta(t, 45.00, dto.Items[0].Price, 0.001)
	assert.InDelta(t, 90.00, dto.Items[0].Total, 0.001)
}

func TestUpdateStatus_PartialEdit(t *testing.T) {
	orders, _ := newOrderFixture(t)
	ctx := context.Background()

	dto, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 5000))
	require.NoError(t, err)

	shipped := "shipped"
	updated, err := orders.UpdateStatus(ctx, dto.ID, &usecase.UpdateOrderStatusInput{Fulfillment: &shipped})
	require.NoError(t, err)
	assert.Equal(t, "shipped", updated.Fulfillment)
	assert.Equal(t, "completed", updated.Status, "untouched field keeps its value")

	cancelled := "cancelled"
	updated, err = orders.UpdateStatus(ctx, dto.ID, &usecase.UpdateOrderStatusInput{Status: &cancelled})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", updated.Status)
	assert.Equal(t, "shipped", updated.Fulfillment)
}

func TestUpdateStatus_RejectsUnknownValues(t *testing.T) {
	orders, _ := newOrderFixture(t)
	ctx := context.Background()

	dto, err := orders.Record(ctx, sessionDetails("cs_1", "jo@example.com", 5000))
	require.NoError(t, err)

	bogus := "teleported"
	_, err = orders.UpdateStatus(ctx, dto.ID, &usecase.UpdateOrderStatusInput{Fulfillment: &bogus})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestGetOrder_UnknownID(t *testing.T) {
	orders, _ := newOrderFixture(t)

	_, err := orders.GetOrder(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}
