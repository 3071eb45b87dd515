package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"darkstore/config"
	deliverycontext "darkstore/internal/delivery/context"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface.
type checkoutService struct {
	productRepo repository.ProductRepository
	provider    service.PaymentProvider
	currency    string
	baseURL     string
	logger      *slog.Logger
}

// CheckoutServiceParams holds dependencies for checkoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Provider    service.PaymentProvider
	Config      *config.Config
	Logger      *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		productRepo: params.ProductRepo,
		provider:    params.Provider,
		currency:    params.Config.Catalog.Currency,
		baseURL:     strings.TrimRight(params.Config.Payment.BaseURL, "/"),
		logger:      params.Logger,
	}
}

func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateSession validates the cart against the catalog and opens a hosted
// checkout session. Stock is validated on every attempt, whether or not the
// provider is configured, so shoppers learn about sold-out items even in
// degraded mode.
func (srv *checkoutService) CreateSession(ctx context.Context, input *usecase.CheckoutInput) (*usecase.CheckoutOutput, error) {
	lineItems := make([]service.CheckoutLineItem, 0, len(input.Items))
	for _, item := range input.Items {
		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductNotFound.WithDetails("unknown product " + item.ProductID)
			}

			return nil, err
		}

		if !product.InStock(item.Quantity) {
			return nil, domainerrors.ErrInsufficientStock.WithDetails(
				product.Name + " has " + strconv.Itoa(product.Stock) + " in stock, requested " + strconv.Itoa(item.Quantity))
		}

		lineItems = append(lineItems, service.CheckoutLineItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitAmount:  product.UnitAmount(),
			Quantity:    item.Quantity,
		})
	}

	if !srv.provider.Configured() {
		return nil, domainerrors.ErrPaymentNotConfigured
	}

	metadata := map[string]string{}
	if input.CustomerName != "" {
		metadata["customer_name"] = input.CustomerName
	}
	if input.CustomerPhone != "" {
		metadata["customer_phone"] = input.CustomerPhone
	}

	session, err := srv.provider.CreateCheckoutSession(ctx, &service.CheckoutSessionRequest{
		LineItems:     lineItems,
		Currency:      srv.currency,
		CustomerEmail: input.CustomerEmail,
		CustomerName:  input.CustomerName,
		CustomerPhone: input.CustomerPhone,
		SuccessURL:    srv.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     srv.baseURL + "/cart",
		Metadata:      metadata,
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrPaymentNotConfigured) {
			return nil, err
		}

		srv.log(ctx).Error("failed to create checkout session", slog.String("error", err.Error()))

		return nil, domainerrors.ErrCheckoutFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("checkout session created",
		slog.String("session_id", session.ID),
		slog.Int("line_items", len(lineItems)),
	)

	return &usecase.CheckoutOutput{
		SessionID:   session.ID,
		CheckoutURL: session.URL,
	}, nil
}
