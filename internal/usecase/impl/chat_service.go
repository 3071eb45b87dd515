package impl

import (
	"context"
	"log/slog"

	deliverycontext "darkstore/internal/delivery/context"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/usecase"

	"go.uber.org/fx"
)

// chatService implements the ChatUsecase interface. The hosted model answers
// when available; every failure degrades to the local responder so the chat
// widget never errors out in front of a shopper.
type chatService struct {
	productRepo repository.ProductRepository
	primary     service.AssistantService
	fallback    service.AssistantService
	logger      *slog.Logger
}

// ChatServiceParams holds dependencies for chatService, injected by Fx.
// Primary is absent when no assistant API key is configured.
type ChatServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
	Primary     service.AssistantService `name:"assistantPrimary" optional:"true"`
	Fallback    service.AssistantService `name:"assistantFallback"`
	Logger      *slog.Logger
}

// NewChatService is the constructor for chatService.
func NewChatService(params ChatServiceParams) usecase.ChatUsecase {
	return &chatService{
		productRepo: params.ProductRepo,
		primary:     params.Primary,
		fallback:    params.Fallback,
		logger:      params.Logger,
	}
}

func (srv *chatService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Ask answers a shopper question grounded in the current catalog.
func (srv *chatService) Ask(ctx context.Context, input *usecase.ChatInput) (*usecase.ChatOutput, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if srv.primary != nil {
		answer, err := srv.primary.Answer(ctx, input.Question, products)
		if err == nil {
			return &usecase.ChatOutput{Answer: answer.Answer, Source: answer.Source}, nil
		}

		srv.log(ctx).Warn("hosted assistant unavailable, using local responder",
			slog.String("error", err.Error()),
		)
	}

	answer, err := srv.fallback.Answer(ctx, input.Question, products)
	if err != nil {
		return nil, err
	}

	return &usecase.ChatOutput{Answer: answer.Answer, Source: answer.Source}, nil
}
