package impl

import (
	"context"
	"log/slog"

	deliverycontext "darkstore/internal/delivery/context"
	domainerrors "darkstore/internal/domain/errors"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"go.uber.org/fx"
)

// paymentEventService implements the PaymentEventUsecase interface.
type paymentEventService struct {
	verifier     service.WebhookVerifier
	provider     service.PaymentProvider
	orderUsecase usecase.OrderUsecase
	logger       *slog.Logger
}

// PaymentEventServiceParams holds dependencies for paymentEventService, injected by Fx.
type PaymentEventServiceParams struct {
	fx.In

	Verifier     service.WebhookVerifier
	Provider     service.PaymentProvider
	OrderUsecase usecase.OrderUsecase
	Logger       *slog.Logger
}

// NewPaymentEventService is the constructor for paymentEventService.
func NewPaymentEventService(params PaymentEventServiceParams) usecase.PaymentEventUsecase {
	return &paymentEventService{
		verifier:     params.Verifier,
		provider:     params.Provider,
		orderUsecase: params.OrderUsecase,
		logger:       params.Logger,
	}
}

func (srv *paymentEventService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// HandleEvent authenticates an inbound webhook and records completed
// checkouts. Unrecognized event types are acknowledged without effect so the
// provider stops redelivering them; processing failures surface as errors so
// the provider retries.
func (srv *paymentEventService) HandleEvent(ctx context.Context, payload []byte, signatureHeader string) (*usecase.EventResult, error) {
	event, err := srv.verifier.VerifyAndParse(payload, signatureHeader)
	if err != nil {
		srv.log(ctx).Warn("rejected webhook with bad signature", slog.String("error", err.Error()))

		return nil, err
	}

	if event.Type != service.EventCheckoutCompleted {
		srv.log(ctx).Debug("ignoring payment event",
			slog.String("event_id", event.ID),
			slog.String("type", event.Type),
		)

		return &usecase.EventResult{Received: true, Outcome: usecase.EventOutcomeIgnored}, nil
	}

	if event.SessionID == "" {
		return nil, domainerrors.ErrEventProcessingFailed.WithDetails("completed event carries no session id")
	}

	details, err := srv.provider.FetchSession(ctx, event.SessionID)
	if err != nil {
		srv.log(ctx).Error("failed to fetch session for completed checkout",
			slog.String("event_id", event.ID),
			slog.String("session_id", event.SessionID),
			slog.String("error", err.Error()),
		)

		return nil, domainerrors.ErrEventProcessingFailed.WrapMessage(err.Error())
	}

	order, err := srv.orderUsecase.Record(ctx, details)
	if err != nil {
		srv.log(ctx).Error("failed to record order",
			slog.String("event_id", event.ID),
			slog.String("session_id", event.SessionID),
			slog.String("error", err.Error()),
		)

		return nil, domainerrors.ErrEventProcessingFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("payment event processed",
		slog.String("event_id", event.ID),
		slog.String("session_id", event.SessionID),
		slog.String("order_id", order.ID),
	)

	return &usecase.EventResult{Received: true, Outcome: usecase.EventOutcomeRecorded}, nil
}
