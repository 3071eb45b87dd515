package usecase

import (
	"context"
)

// CustomerUsecase serves the dashboard's customer ledger view.
type CustomerUsecase interface {
	ListCustomers(ctx context.Context) ([]CustomerDTO, error)
}
