package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"dealradar/config"
	"dealradar/internal/delivery"
	"dealradar/internal/delivery/http"
	"dealradar/internal/delivery/http/cookies"
	"dealradar/internal/delivery/http/middleware"
	"dealradar/internal/delivery/http/router/handler"
	"dealradar/internal/domain/service"
	"dealradar/internal/infra/auth"
	logs "dealradar/internal/infra/log"
	"dealradar/internal/infra/notification"
	"dealradar/internal/infra/persistence/mongodb"
	"dealradar/internal/infra/pubsub"
	"dealradar/internal/infra/qrcode"
	"dealradar/internal/usecase/impl"

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
		pubsub.Module,
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
		mongodb.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			mongodb.NewUserRepository,
			mongodb.NewBusinessRepository,
			mongodb.NewProductRepository,
			mongodb.NewDealRepository,
			mongodb.NewCategoryRepository,
			mongodb.NewExistenceChecker,
			mongodb.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewCookieSigner,
			auth.NewStatelessValidator,
			newMailer,
			newPushSender,
			newQRCodeService,
		),
	)
}

// newMailer hands emails to the configured delivery service, or drops
// them when none is configured.
func newMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	if cfg.Email == nil || cfg.Email.BaseURL == "" {
		return notification.NewNoopMailer(logger)
	}

	return notification.NewHTTPMailer(cfg.Email.BaseURL, logger)
}

// newPushSender creates a Firebase push sender when credentials are
// configured, a no-op otherwise.
func newPushSender(ctx context.Context, cfg *config.Config, logger *slog.Logger) (service.PushSender, error) {
	if cfg.Firebase == nil || cfg.Firebase.CredentialsPath == "" {
		return notification.NewNoopPushSender(logger), nil
	}

	svc, err := notification.NewFirebaseService(ctx, cfg.Firebase.CredentialsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firebase service: %w", err)
	}

	return svc, nil
}

// newQRCodeService creates a QR code service with dependency injection
func newQRCodeService(cfg *config.Config) service.QRCodeService {
	if cfg.QRCode == nil {
		// Use default values if not configured
		return qrcode.NewQRCodeService(256, "M")
	}

	return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewBusinessService,
			impl.NewProductService,
			impl.NewDealService,
			impl.NewCategoryService,
			impl.NewSessionService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			cookies.NewManager,
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewExistsMiddleware,
			middleware.NewRequestContextMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewBusinessHandler,
			handler.NewProductHandler,
			handler.NewDealHandler,
			handler.NewCategoryHandler,
			handler.NewSessionHandler,
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
