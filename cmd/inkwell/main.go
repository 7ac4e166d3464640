package main

import (
	"context"
	"log/slog"
	"os"

	"inkwell/config"
	"inkwell/internal/delivery"
	"inkwell/internal/delivery/http"
	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/router/handler"
	deliverymiddleware "inkwell/internal/delivery/middleware"
	"inkwell/internal/domain/service"
	"inkwell/internal/infra/ai"
	"inkwell/internal/infra/auth"
	logs "inkwell/internal/infra/log"
	"inkwell/internal/infra/persistence/postgres"
	"inkwell/internal/infra/pubsub"
	"inkwell/internal/infra/qrcode"
	"inkwell/internal/infra/storage"
	"inkwell/internal/usecase/impl"

	"go.uber.org/fx"
)

const defaultAIHistoryLimit = 20

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
		postgres.New,
		storage.New,
		pubsub.NewEventPublisher,
		ai.NewProvider,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewTokenPairRepository,
			postgres.NewAPITokenRepository,
			postgres.NewBlogRepository,
			postgres.NewPortfolioRepository,
			postgres.NewChatRepository,
			postgres.NewAppRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newQRCodeService,
			newAIHistory,
		),
	)
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M", "")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
}

// newAIHistory creates the bounded per-caller conversation store
func newAIHistory(cfg *config.Config) service.AIHistory {
	limit := defaultAIHistoryLimit
	if cfg.AI != nil && cfg.AI.HistoryLimit > 0 {
		limit = cfg.AI.HistoryLimit
	}

	return ai.NewHistoryStore(limit)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewUserService,
			impl.NewTokenAppsService,
			impl.NewBlogService,
			impl.NewPortfolioService,
			impl.NewChatService,
			impl.NewAppService,
			impl.NewAIService,
			impl.NewFileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewAPITokenGate,
			deliverymiddleware.NewRequestIDMiddleware,
			deliverymiddleware.NewLoggerMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewBlogHandler,
			handler.NewPortfolioHandler,
			handler.NewChatHandler,
			handler.NewAppHandler,
			handler.NewTokenAppsHandler,
			handler.NewAIHandler,
			handler.NewFileHandler,
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
