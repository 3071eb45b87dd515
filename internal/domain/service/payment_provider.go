// Package service defines domain service interfaces implemented by the
// infrastructure layer.
package service

import (
	"context"

	"darkstore/internal/domain/entity"
)

// ProductMirror holds the provider-side identifiers created for a catalog
// product. Provider price objects are immutable once created; a price change
// archives the old object and creates a new one.
type ProductMirror struct {
	ProductRef string
	PriceRef   string
}

// CheckoutLineItem is one line of a checkout session request. UnitAmount is
// the effective sale price in minor currency units.
type CheckoutLineItem struct {
	ProductID   string
	ProductName string
	UnitAmount  int64
	Quantity    int
}

// CheckoutSessionRequest describes a hosted checkout session to create.
type CheckoutSessionRequest struct {
	LineItems     []CheckoutLineItem
	Currency      string
	CustomerEmail string
	CustomerName  string
	CustomerPhone string
	SuccessURL    string
	CancelURL     string
	Metadata      map[string]string
}

// CheckoutSession is the provider's handle for a created session.
type CheckoutSession struct {
	ID  string
	URL string
}

// SessionLineItem is one purchased line as reported by the provider.
type SessionLineItem struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitAmount  int64
}

// SessionDetails is everything the order recorder needs from a completed
// checkout session.
type SessionDetails struct {
	ID              string
	PaymentRef      string
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	ShippingAddress entity.Address
	BillingAddress  entity.Address
	LineItems       []SessionLineItem
	AmountTotal     int64
	Currency        string
	PaymentStatus   string
	Metadata        map[string]string
}

// PaymentProvider is the capability interface over the hosted payment
// provider. The live implementation talks to the provider's REST API; the
// unconfigured implementation returns deterministic mock identifiers so the
// rest of the system keeps functioning in a degraded, non-payable mode.
type PaymentProvider interface {
	// Configured reports whether real payments can be processed.
	Configured() bool

	// MirrorProduct creates the provider-side product and price objects for
	// a new catalog product.
	MirrorProduct(ctx context.Context, product *entity.Product) (*ProductMirror, error)

	// UpdateMirror updates the provider-side product metadata and, when
	// priceChanged is set, rotates the price object (create new, archive
	// old). It returns the new price ref, or "" when the price was kept.
	UpdateMirror(ctx context.Context, product *entity.Product, priceChanged bool) (string, error)

	// ArchiveMirror soft-deactivates the provider-side product.
	ArchiveMirror(ctx context.Context, productRef string) error

	// CreateCheckoutSession starts a hosted checkout flow.
	CreateCheckoutSession(ctx context.Context, req *CheckoutSessionRequest) (*CheckoutSession, error)

	// FetchSession retrieves line items and buyer details for a session.
	FetchSession(ctx context.Context, sessionID string) (*SessionDetails, error)
}

// PaymentEvent is a verified webhook notification.
type PaymentEvent struct {
	ID        string
	Type      string
	SessionID string
}

// EventCheckoutCompleted is the only event type that drives order recording;
// every other type is acknowledged and ignored.
const EventCheckoutCompleted = "checkout.session.completed"

// WebhookVerifier authenticates inbound payment events against the
// provider-issued signature header.
type WebhookVerifier interface {
	// VerifyAndParse checks the signature and decodes the event payload.
	VerifyAndParse(payload []byte, signatureHeader string) (*PaymentEvent, error)
}
