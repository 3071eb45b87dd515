package repository

import (
	"context"
	"errors"

	"darkstore/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is a domain-specific error returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// ErrSessionAlreadyRecorded is returned by Create when an order for the same
// payment session already exists.
var ErrSessionAlreadyRecorded = errors.New("order for session already recorded")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// List returns all orders, newest first.
	List(ctx context.Context) ([]*entity.Order, error)

	// FindByID retrieves a single order by its id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// FindBySessionRef retrieves the order recorded for a payment session,
	// the lookup backing idempotent recording.
	FindBySessionRef(ctx context.Context, sessionRef string) (*entity.Order, error)

	// Create persists a new order. The implementation assigns the id and timestamps.
	Create(ctx context.Context, order *entity.Order) error

	// UpdateStatus persists payment status and fulfillment changes.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus, fulfillment entity.FulfillmentStatus) error
}
