package impl

import (
	"context"

	"darkstore/internal/domain/repository"
	"darkstore/internal/usecase"

	"go.uber.org/fx"
)

// customerService implements the CustomerUsecase interface.
type customerService struct {
	customerRepo repository.CustomerRepository
}

// CustomerServiceParams holds dependencies for customerService, injected by Fx.
type CustomerServiceParams struct {
	fx.In

	CustomerRepo repository.CustomerRepository
}

// NewCustomerService is the constructor for customerService.
func NewCustomerService(params CustomerServiceParams) usecase.CustomerUsecase {
	return &customerService{
		customerRepo: params.CustomerRepo,
	}
}

// ListCustomers returns the full ledger for the dashboard.
func (srv *customerService) ListCustomers(ctx context.Context) ([]usecase.CustomerDTO, error) {
	customers, err := srv.customerRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return usecase.NewCustomerDTOs(customers), nil
}
