package usecase

import (
	"context"
)

// CheckoutItemInput selects a product and quantity for purchase.
type CheckoutItemInput struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CheckoutInput is a shopper's request to start a hosted checkout session.
// Buyer name and email are required so the recorded order can be tied to a
// customer; phone is optional.
type CheckoutInput struct {
	Items         []CheckoutItemInput `json:"items" validate:"required,min=1,dive"`
	CustomerName  string              `json:"customerName" validate:"required"`
	CustomerEmail string              `json:"customerEmail" validate:"required,email"`
	CustomerPhone string              `json:"customerPhone"`
}

// CheckoutOutput hands the shopper the provider-hosted payment page.
type CheckoutOutput struct {
	SessionID   string `json:"sessionId"`
	CheckoutURL string `json:"checkoutUrl"`
}

// CheckoutUsecase validates cart contents against the catalog and opens
// checkout sessions with the payment provider.
type CheckoutUsecase interface {
	CreateSession(ctx context.Context, input *CheckoutInput) (*CheckoutOutput, error)
}
