package usecase

import (
	"context"

	"darkstore/internal/domain/service"
)

// UpdateOrderStatusInput carries a dashboard status edit. Either field may be
// omitted to keep the stored value.
type UpdateOrderStatusInput struct {
	Status      *string `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Fulfillment *string `json:"fulfillment" validate:"omitempty,oneof=unfulfilled shipped delivered"`
}

// OrderUsecase records completed checkouts and serves the dashboard's order
// views.
type OrderUsecase interface {
	// Record persists an order from a completed checkout session and applies
	// it to the customer ledger. Recording the same session twice returns the
	// already-stored order without side effects.
	Record(ctx context.Context, details *service.SessionDetails) (*OrderDTO, error)

	ListOrders(ctx context.Context) ([]OrderDTO, error)
	GetOrder(ctx context.Context, id string) (*OrderDTO, error)
	UpdateStatus(ctx context.Context, id string, input *UpdateOrderStatusInput) (*OrderDTO, error)
}
