package impl

import (
	"context"
	"log/slog"

	deliverycontext "darkstore/internal/delivery/context"
	"darkstore/internal/domain/entity"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for orderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Logger    *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Record persists an order from a completed checkout session and folds it
// into the customer ledger in the same unit of work. It is idempotent on the
// session ref: a replayed event returns the stored order and touches nothing.
func (srv *orderService) Record(ctx context.Context, details *service.SessionDetails) (*usecase.OrderDTO, error) {
	var recorded *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		existing, err := orderRepo.FindBySessionRef(ctx, details.ID)
		if err == nil {
			srv.log(ctx).Info("session already recorded, skipping",
				slog.String("session_ref", details.ID),
				slog.String("order_id", existing.ID.String()),
			)
			recorded = existing

			return nil
		}
		if !errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrap(err, "failed to look up session")
		}

		order := buildOrderFromSession(details)
		if err := orderRepo.Create(ctx, order); err != nil {
			if errors.Is(err, repository.ErrSessionAlreadyRecorded) {
				// Lost a race with a concurrent delivery of the same event.
				recorded, err = orderRepo.FindBySessionRef(ctx, details.ID)

				return err
			}

			return err
		}
		recorded = order

		if order.CustomerEmail == "" {
			srv.log(ctx).Warn("order has no customer email, skipping ledger",
				slog.String("order_id", order.ID.String()),
			)

			return nil
		}

		return srv.applyToLedger(ctx, repoFactory.CustomerRepo(), order)
	})
	if err != nil {
		return nil, err
	}

	dto := usecase.NewOrderDTO(recorded)

	return &dto, nil
}

// applyToLedger upserts the customer row for a newly recorded order.
func (srv *orderService) applyToLedger(ctx context.Context, customerRepo repository.CustomerRepository, order *entity.Order) error {
	customer, err := customerRepo.FindByEmail(ctx, order.CustomerEmail)
	if errors.Is(err, repository.ErrCustomerNotFound) {
		customer = &entity.Customer{
			Email:      order.CustomerEmail,
			TotalSpent: decimal.Zero,
		}
		customer.ApplyOrder(order)

		return customerRepo.Create(ctx, customer)
	}
	if err != nil {
		return errors.Wrap(err, "failed to look up customer")
	}

	customer.ApplyOrder(order)

	return customerRepo.Update(ctx, customer)
}

// ListOrders returns all orders, newest first.
func (srv *orderService) ListOrders(ctx context.Context) ([]usecase.OrderDTO, error) {
	orders, err := srv.orderRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return usecase.NewOrderDTOs(orders), nil
}

// GetOrder returns one order by id.
func (srv *orderService) GetOrder(ctx context.Context, id string) (*usecase.OrderDTO, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.ErrOrderNotFound
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, err
	}

	dto := usecase.NewOrderDTO(order)

	return &dto, nil
}

// UpdateStatus applies a dashboard edit to the payment status, the
// fulfillment progress, or both.
func (srv *orderService) UpdateStatus(ctx context.Context, id string, input *usecase.UpdateOrderStatusInput) (*usecase.OrderDTO, error) {
	orderID, err := uuid.Parse(id)
	if err != nil {
		return nil, domainerrors.ErrOrderNotFound
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, err
	}

	status := order.Status
	if input.Status != nil {
		status = entity.OrderStatus(*input.Status)
		if !status.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown order status " + *input.Status)
		}
	}

	fulfillment := order.Fulfillment
	if input.Fulfillment != nil {
		fulfillment = entity.FulfillmentStatus(*input.Fulfillment)
		if !fulfillment.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown fulfillment status " + *input.Fulfillment)
		}
	}

	if err := srv.orderRepo.UpdateStatus(ctx, orderID, status, fulfillment); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, err
	}

	order.Status = status
	order.Fulfillment = fulfillment

	srv.log(ctx).Info("order status updated",
		slog.String("order_id", id),
		slog.String("status", string(status)),
		slog.String("fulfillment", string(fulfillment)),
	)

	dto := usecase.NewOrderDTO(order)

	return &dto, nil
}

// buildOrderFromSession converts provider session details into an order
// entity. Provider amounts are minor units; the order keeps exact decimals.
func buildOrderFromSession(details *service.SessionDetails) *entity.Order {
	items := make([]entity.OrderItem, 0, len(details.LineItems))
	for _, line := range details.LineItems {
		unitPrice := decimal.NewFromInt(line.UnitAmount).Div(decimal.NewFromInt(100))
		items = append(items, entity.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))),
		})
	}

	return &entity.Order{
		ExternalSessionRef: details.ID,
		ExternalPaymentRef: details.PaymentRef,
		CustomerEmail:      details.CustomerEmail,
		CustomerName:       details.CustomerName,
		CustomerPhone:      details.CustomerPhone,
		ShippingAddress:    details.ShippingAddress,
		BillingAddress:     details.BillingAddress,
		Items:              items,
		Total:              decimal.NewFromInt(details.AmountTotal).Div(decimal.NewFromInt(100)),
		Currency:           details.Currency,
		Status:             entity.OrderStatusCompleted,
		Fulfillment:        entity.FulfillmentUnfulfilled,
		PaymentStatus:      details.PaymentStatus,
		Metadata:           details.Metadata,
	}
}
