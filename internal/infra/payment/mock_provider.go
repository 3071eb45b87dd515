package payment

import (
	"context"
	"fmt"
	"log/slog"

	"darkstore/internal/domain/entity"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/service"
)

// mockProvider stands in when no provider secret key is configured. Catalog
// writes succeed with deterministic mock identifiers; checkout and session
// lookup are refused so no unpayable sessions are handed to shoppers.
type mockProvider struct {
	logger *slog.Logger
}

// NewMockProvider creates the degraded-mode provider.
func NewMockProvider(logger *slog.Logger) service.PaymentProvider {
	return &mockProvider{logger: logger}
}

// Configured reports that real payments cannot be processed.
func (p *mockProvider) Configured() bool {
	return false
}

// MirrorProduct hands back mock refs derived from the catalog id.
func (p *mockProvider) MirrorProduct(_ context.Context, product *entity.Product) (*service.ProductMirror, error) {
	p.logger.Debug("payment provider not configured, using mock product refs",
		slog.String("product_id", product.ID),
	)

	return &service.ProductMirror{
		ProductRef: "mock_prod_" + product.ID,
		PriceRef:   mockPriceRef(product),
	}, nil
}

// UpdateMirror rotates to a new mock price ref when the price changed.
func (p *mockProvider) UpdateMirror(_ context.Context, product *entity.Product, priceChanged bool) (string, error) {
	if !priceChanged {
		return "", nil
	}

	return mockPriceRef(product), nil
}

// ArchiveMirror is a no-op.
func (p *mockProvider) ArchiveMirror(_ context.Context, _ string) error {
	return nil
}

// CreateCheckoutSession refuses; there is nowhere to send the shopper.
func (p *mockProvider) CreateCheckoutSession(_ context.Context, _ *service.CheckoutSessionRequest) (*service.CheckoutSession, error) {
	return nil, domainerrors.ErrPaymentNotConfigured
}

// FetchSession refuses; mock sessions are never created.
func (p *mockProvider) FetchSession(_ context.Context, _ string) (*service.SessionDetails, error) {
	return nil, domainerrors.ErrPaymentNotConfigured
}

// mockPriceRef is deterministic over the product id and its current unit
// amount, so a price change yields a new ref just like a real rotation.
func mockPriceRef(product *entity.Product) string {
	return fmt.Sprintf("mock_price_%s_%d", product.ID, product.UnitAmount())
}
