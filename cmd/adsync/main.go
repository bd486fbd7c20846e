package main

import (
	"context"
	"log/slog"
	"os"

	"adsync/config"
	"adsync/internal/delivery"
	"adsync/internal/delivery/http"
	"adsync/internal/delivery/http/middleware"
	"adsync/internal/delivery/http/router/handler"
	"adsync/internal/infra/auth"
	"adsync/internal/infra/cache"
	logs "adsync/internal/infra/log"
	"adsync/internal/infra/meta"
	"adsync/internal/infra/persistence/postgres"
	"adsync/internal/infra/sheets"
	"adsync/internal/usecase/impl"

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
		postgres.New,
		cache.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewCredentialRepository,
			postgres.NewExportConfigRepository,
			postgres.NewExportLogRepository,
			postgres.NewSyncStampRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTValidator,
			meta.NewFactory,
			sheets.NewFactory,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCooldownGuard,
			impl.NewTokenService,
			impl.NewAdsService,
			impl.NewSheetService,
			impl.NewExportService,
			impl.NewExportConfigService,
			impl.NewExportLogService,
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
			handler.NewExportHandler,
			handler.NewConfigHandler,
			handler.NewMetaHandler,
			handler.NewSheetHandler,
			handler.NewConnectHandler,
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
