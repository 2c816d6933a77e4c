package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	catalogapp "github.com/streetmart/backend/internal/application/catalog"
	identityapp "github.com/streetmart/backend/internal/application/identity"
	tradeapp "github.com/streetmart/backend/internal/application/trade"
	"github.com/streetmart/backend/internal/infrastructure/auth"
	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/event"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
	"github.com/streetmart/backend/internal/infrastructure/printing"
	"github.com/streetmart/backend/internal/infrastructure/storage"
	"github.com/streetmart/backend/internal/infrastructure/telemetry"
	"github.com/streetmart/backend/internal/interfaces/http/handler"
	"github.com/streetmart/backend/internal/interfaces/http/router"
)

// application holds the wired services and what must be released on shutdown
type application struct {
	handlers   router.Handlers
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist

	bus     *event.InMemoryEventBus
	closers []func() error
	logger  *zap.Logger
}

// Close stops the event bus and releases external resources in reverse order
func (a *application) Close() {
	if err := a.bus.Stop(context.Background()); err != nil {
		a.logger.Warn("Event bus stop failed", zap.Error(err))
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("Shutdown hook failed", zap.Error(err))
		}
	}
}

func wire(ctx context.Context, cfg *config.Config, db *persistence.Database, providers *telemetry.Providers, log *zap.Logger) (*application, error) {
	app := &application{logger: log}

	app.bus = event.NewInMemoryEventBus(log.Named("events"))
	app.bus.Subscribe(tradeapp.NewOrderActivityHandler(log))
	if err := app.bus.Start(ctx); err != nil {
		return nil, fmt.Errorf("start event bus: %w", err)
	}

	readDB, err := db.Sqlx()
	if err != nil {
		return nil, err
	}

	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	listingRepo := persistence.NewGormListingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	orderViews := persistence.NewSqlxOrderViewReader(readDB)

	app.jwtService = auth.NewJWTService(cfg.JWT)
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect token blacklist: %w", err)
		}
		app.blacklist = redisBlacklist
		app.closers = append(app.closers, redisBlacklist.Close)
		log.Info("Token blacklist backed by Redis", zap.String("addr", cfg.Redis.Addr()))
	} else {
		app.blacklist = auth.NewInMemoryTokenBlacklist()
		log.Info("Token blacklist kept in memory")
	}

	images, err := storage.NewImageStorage(&cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("image storage: %w", err)
	}
	if s3Images, ok := images.(*storage.S3ImageStorage); ok {
		if err := s3Images.EnsureBucket(ctx); err != nil {
			log.Warn("Image bucket check failed", zap.String("bucket", s3Images.Bucket()), zap.Error(err))
		}
	}

	orderMetrics, err := telemetry.NewOrderMetrics(providers.MeterFor("streetmart/orders"))
	if err != nil {
		return nil, fmt.Errorf("order metrics: %w", err)
	}

	var renderer printing.PDFRenderer
	if cfg.Printing.Enabled {
		chrome := printing.NewChromedpRenderer(cfg.Printing, log)
		renderer = chrome
		app.closers = append(app.closers, chrome.Close)
	} else {
		log.Info("PDF slips disabled; HTML slips remain available")
	}

	authService := identityapp.NewAuthService(userRepo, app.jwtService, app.blacklist, app.bus, log)
	catalogService := catalogapp.NewCatalogService(productRepo, listingRepo, userRepo, images, log)

	orderService := tradeapp.NewOrderService(orderRepo, listingRepo, tradeapp.OrderServiceConfig{
		PricePolicy: cfg.Order.PricePolicy,
	}, log)
	orderService.SetEventPublisher(app.bus)
	orderService.SetMetrics(orderMetrics)

	dashboardService := tradeapp.NewDashboardService(orderViews, log)
	slipService := tradeapp.NewSlipService(orderViews, printing.NewSlipBuilder(language.English), renderer, log)

	app.handlers = router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Catalog:   handler.NewCatalogHandler(catalogService),
		Order:     handler.NewOrderHandler(orderService, slipService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		System:    handler.NewSystemHandler(db, cfg.App.Name, "1.0.0"),
	}
	return app, nil
}
