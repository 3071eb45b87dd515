package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"darkstore/config"
	"darkstore/internal/domain/entity"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/infra/persistence/jsonfile"
	"darkstore/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Catalog.MaxProducts = config.DefaultMaxProducts
	cfg.Catalog.Currency = "usd"
	cfg.Payment.BaseURL = "http://localhost:3000"

	return cfg
}

type testRepos struct {
	store        *jsonfile.Store
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	txManager    repository.TransactionManager
}

func newTestRepos(t *testing.T) *testRepos {
	t.Helper()

	store, err := jsonfile.NewStore(t.TempDir())
	require.NoError(t, err)

	return &testRepos{
		store:        store,
		productRepo:  jsonfile.NewProductRepository(store),
		orderRepo:    jsonfile.NewOrderRepository(store),
		customerRepo: jsonfile.NewCustomerRepository(store),
		txManager:    jsonfile.NewTransactionManager(store),
	}
}

// fakeProvider records calls and serves canned responses, standing in for
// the live payment provider.
type fakeProvider struct {
	configured bool

	mirrorErr   error
	mirrorCalls int

	updateCalls        int
	lastPriceChanged   bool
	rotatedPriceRef    string
	archivedProductRef string

	sessions       map[string]*service.SessionDetails
	createdSession *service.CheckoutSessionRequest
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		configured: true,
		sessions:   map[string]*service.SessionDetails{},
	}
}

func (p *fakeProvider) Configured() bool {
	return p.configured
}

func (p *fakeProvider) MirrorProduct(_ context.Context, product *entity.Product) (*service.ProductMirror, error) {
	p.mirrorCalls++
	if p.mirrorErr != nil {
		return nil, p.mirrorErr
	}

	return &service.ProductMirror{
		ProductRef: "prod_" + product.ID,
		PriceRef:   "price_" + product.ID,
	}, nil
}

func (p *fakeProvider) UpdateMirror(_ context.Context, product *entity.Product, priceChanged bool) (string, error) {
	p.updateCalls++
	p.lastPriceChanged = priceChanged
	if !priceChanged {
		return "", nil
	}
	p.rotatedPriceRef = "price_" + product.ID + "_v2"

	return p.rotatedPriceRef, nil
}

func (p *fakeProvider) ArchiveMirror(_ context.Context, productRef string) error {
	p.archivedProductRef = productRef

	return nil
}

func (p *fakeProvider) CreateCheckoutSession(_ context.Context, req *service.CheckoutSessionRequest) (*service.CheckoutSession, error) {
	if !p.configured {
		return nil, domainerrors.ErrPaymentNotConfigured
	}
	p.createdSession = req

	return &service.CheckoutSession{ID: "cs_test_1", URL: "https://pay.example.com/cs_test_1"}, nil
}

func (p *fakeProvider) FetchSession(_ context.Context, sessionID string) (*service.SessionDetails, error) {
	if !p.configured {
		return nil, domainerrors.ErrPaymentNotConfigured
	}
	details, ok := p.sessions[sessionID]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}

	return details, nil
}

func createCatalogProduct(t *testing.T, catalog usecase.CatalogUsecase, name string, price float64, discount, stock int) *usecase.ProductDTO {
	t.Helper()

	created, err := catalog.CreateProduct(context.Background(), &usecase.CreateProductInput{
		Name:     name,
		Price:    price,
		Discount: discount,
		Stock:    stock,
		Category: "outdoor",
		Brand:    "northpine",
	})
	require.NoError(t, err)

	return created
}

func sessionDetails(sessionID, email string, amountCents int64) *service.SessionDetails {
	return &service.SessionDetails{
		ID:            sessionID,
		PaymentRef:    "pi_" + sessionID,
		CustomerEmail: email,
		CustomerName:  "Jo Doe",
		CustomerPhone: "+15550001111",
		ShippingAddress: entity.Address{
			Line1: "1 Main St", City: "Springfield", State: "OR", PostalCode: "97477", Country: "US",
		},
		BillingAddress: entity.Address{
			Line1: "1 Main St", City: "Springfield", State: "OR", PostalCode: "97477", Country: "US",
		},
		LineItems: []service.SessionLineItem{
			{ProductID: "p1", ProductName: "Down Sleeping Bag", Quantity: 1, UnitAmount: amountCents},
		},
		AmountTotal:   amountCents,
		Currency:      "usd",
		PaymentStatus: "paid",
	}
}

func moneyEqual(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.True(t, decimal.RequireFromString(expected).Equal(actual),
		"expected %s, got %s", expected, actual.String())
}
