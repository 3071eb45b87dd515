package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus is the payment lifecycle of an order. It is owned by the
// payment event path; fulfillment progress lives in FulfillmentStatus.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the closed order status values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}

	return false
}

// FulfillmentStatus tracks shipping progress independently of the payment
// status. It is owned by the admin dashboard.
type FulfillmentStatus string

const (
	FulfillmentUnfulfilled FulfillmentStatus = "unfulfilled"
	FulfillmentShipped     FulfillmentStatus = "shipped"
	FulfillmentDelivered   FulfillmentStatus = "delivered"
)

// Valid reports whether s is one of the closed fulfillment values.
func (s FulfillmentStatus) Valid() bool {
	switch s {
	case FulfillmentUnfulfilled, FulfillmentShipped, FulfillmentDelivered:
		return true
	}

	return false
}

// Address is a postal address as reported by the payment provider's
// checkout session.
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// OrderItem is one purchased line of an order. UnitPrice is the effective
// sale price at purchase time; LineTotal = UnitPrice * Quantity.
type OrderItem struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// Order is one completed (or cancelled) purchase. At most one order exists
// per ExternalSessionRef; the recorder enforces this before insert.
type Order struct {
	ID                 uuid.UUID
	ExternalSessionRef string
	ExternalPaymentRef string
	CustomerEmail      string
	CustomerName       string
	CustomerPhone      string
	ShippingAddress    Address
	BillingAddress     Address
	Items              []OrderItem
	Total              decimal.Decimal
	Currency           string
	Status             OrderStatus
	Fulfillment        FulfillmentStatus
	PaymentStatus      string
	Metadata           map[string]string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ItemsTotal sums the line totals. The total invariant is checked at
// creation time only.
func (o *Order) ItemsTotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range o.Items {
		sum = sum.Add(item.LineTotal)
	}

	return sum
}
