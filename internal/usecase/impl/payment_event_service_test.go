package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/infra/payment"
	"darkstore/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const webhookSecret = "whsec_unit"

func newEventFixture(t *testing.T, provider *fakeProvider) (usecase.PaymentEventUsecase, *testRepos) {
	t.Helper()

	repos := newTestRepos(t)
	orders := NewOrderService(OrderServiceParams{
		TxManager: repos.txManager,
		OrderRepo: repos.orderRepo,
		Logger:    testLogger(),
	})
	events := NewPaymentEventService(PaymentEventServiceParams{
		Verifier:     payment.NewSignatureVerifier(webhookSecret),
		Provider:     provider,
		OrderUsecase: orders,
		Logger:       testLogger(),
	})

	return events, repos
}

func signedEvent(eventType, sessionID string) ([]byte, string) {
	payload := []byte(`{"id":"evt_1","type":"` + eventType + `","data":{"object":{"id":"` + sessionID + `"}}}`)

	return payload, payment.SignPayload(webhookSecret, time.Now(), payload)
}

func TestHandleEvent_RecordsCompletedCheckout(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_1"] = sessionDetails("cs_1", "jo@example.com", 18000)
	events, repos := newEventFixture(t, provider)

	payload, signature := signedEvent("checkout.session.completed", "cs_1")

	result, err := events.HandleEvent(context.Background(), payload, signature)
	require.NoError(t, err)
	assert.True(t, result.Received)
	assert.Equal(t, usecase.EventOutcomeRecorded, result.Outcome)

	order, err := repos.orderRepo.FindBySessionRef(context.Background(), "cs_1")
	require.NoError(t, err)
	moneyEqual(t, "180", order.Total)
}

func TestHandleEvent_InvalidSignatureMutatesNothing(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_1"] = sessionDetails("cs_1", "jo@example.com", 18000)
	events, repos := newEventFixture(t, provider)

	payload, _ := signedEvent("checkout.session.completed", "cs_1")
	badSignature := payment.SignPayload("whsec_wrong", time.Now(), payload)

	_, err := events.HandleEvent(context.Background(), payload, badSignature)
	assert.ErrorIs(t, err, domainerrors.ErrSignatureInvalid)

	orders, err := repos.orderRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)

	customers, err := repos.customerRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, customers)
}

func TestHandleEvent_IgnoresOtherEventTypes(t *testing.T) {
	provider := newFakeProvider()
	events, repos := newEventFixture(t, provider)

	payload, signature := signedEvent("invoice.paid", "in_1")

	result, err := events.HandleEvent(context.Background(), payload, signature)
	require.NoError(t, err)
	assert.Equal(t, usecase.EventOutcomeIgnored, result.Outcome)

	orders, err := repos.orderRepo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestHandleEvent_ReplayedDeliveryIsIdempotent(t *testing.T) {
	provider := newFakeProvider()
	provider.sessions["cs_1"] = sessionDetails("cs_1", "jo@example.com", 5000)
	events, repos := newEventFixture(t, provider)

	payload, signature := signedEvent("checkout.session.completed", "cs_1")

	_, err := events.HandleEvent(context.Background(), payload, signature)
	require.NoError(t, err)
	result, err := events.HandleEvent(context.Background(), payload, signature)
	require.NoError(t, err)
	assert.Equal(t, usecase.EventOutcomeRecorded, result.Outcome)

	orders, err := repos.orderRepo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	customer, err := repos.customerRepo.FindByEmail(context.Background(), "jo@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, customer.TotalOrders)
}

func TestHandleEvent_SessionFetchFailureIsRetryable(t *testing.T) {
	provider := newFakeProvider()
	events, _ := newEventFixture(t, provider)

	payload, signature := signedEvent("checkout.session.completed", "cs_unknown")

	_, err := events.HandleEvent(context.Background(), payload, signature)
	assert.ErrorIs(t, err, domainerrors.ErrEventProcessingFailed)
}
