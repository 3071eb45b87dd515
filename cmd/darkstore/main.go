package main

import (
	"context"
	"log/slog"
	"os"

	"darkstore/config"
	"darkstore/internal/delivery"
	"darkstore/internal/delivery/http"
	"darkstore/internal/delivery/http/middleware"
	"darkstore/internal/delivery/http/router/handler"
	"darkstore/internal/domain/repository"
	"darkstore/internal/domain/service"
	"darkstore/internal/infra/assistant"
	"darkstore/internal/infra/auth"
	logs "darkstore/internal/infra/log"
	"darkstore/internal/infra/payment"
	"darkstore/internal/infra/persistence/jsonfile"
	"darkstore/internal/infra/persistence/postgres"
	"darkstore/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStorage,
		),
	)
}

// newStorage selects the persistence backend. The default jsonfile driver
// keeps the whole store in a data directory; postgres is for deployments
// that outgrow it.
func newStorage(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (
	repository.ProductRepository,
	repository.OrderRepository,
	repository.CustomerRepository,
	repository.TransactionManager,
	error,
) {
	switch cfg.Store.Driver {
	case "postgres":
		db, err := postgres.New(postgres.Params{
			Lifecycle: lc,
			Config:    cfg,
			Logger:    logger,
		})
		if err != nil {
			return nil, nil, nil, nil, err
		}

		return postgres.NewProductRepository(db),
			postgres.NewOrderRepository(db),
			postgres.NewCustomerRepository(db),
			postgres.NewTransactionManager(db),
			nil
	default:
		store, err := jsonfile.NewStore(cfg.Store.DataDir)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		return jsonfile.NewProductRepository(store),
			jsonfile.NewOrderRepository(store),
			jsonfile.NewCustomerRepository(store),
			jsonfile.NewTransactionManager(store),
			nil
	}
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newPaymentProvider,
			newWebhookVerifier,
			fx.Annotate(
				newPrimaryAssistant,
				fx.ResultTags(`name:"assistantPrimary"`),
			),
			fx.Annotate(
				assistant.NewLocalResponder,
				fx.ResultTags(`name:"assistantFallback"`),
			),
		),
	)
}

// newPaymentProvider returns the hosted provider client, or the degraded
// mock when no secret key is configured.
func newPaymentProvider(cfg *config.Config, logger *slog.Logger) service.PaymentProvider {
	if cfg.Payment.SecretKey == "" {
		logger.Warn("payment secret key not configured, running with mock provider")

		return payment.NewMockProvider(logger)
	}

	return payment.NewRESTClient(cfg.Payment.SecretKey, cfg.Payment.APIBaseURL, cfg.Catalog.Currency, logger)
}

func newWebhookVerifier(cfg *config.Config) service.WebhookVerifier {
	return payment.NewSignatureVerifier(cfg.Payment.WebhookSecret)
}

// newPrimaryAssistant returns the hosted LLM client when configured, nil
// otherwise. The chat service falls back to the local responder either way.
func newPrimaryAssistant(cfg *config.Config, logger *slog.Logger) service.AssistantService {
	if cfg.Assistant.APIKey == "" {
		return nil
	}

	return assistant.NewGeminiClient(
		cfg.Assistant.APIKey,
		cfg.Assistant.Endpoint,
		cfg.Assistant.Model,
		cfg.Assistant.MaxOutputTokens,
		logger,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewCheckoutService,
			impl.NewOrderService,
			impl.NewPaymentEventService,
			impl.NewCustomerService,
			impl.NewAnalyticsService,
			impl.NewChatService,
			impl.NewAuthService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewProductHandler,
			handler.NewCheckoutHandler,
			handler.NewWebhookHandler,
			handler.NewOrderHandler,
			handler.NewCustomerHandler,
			handler.NewAnalyticsHandler,
			handler.NewChatHandler,
			handler.NewAuthHandler,
			handler.NewContentHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
