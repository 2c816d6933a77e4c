package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/streetmart/backend/docs"
	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/logger"
	"github.com/streetmart/backend/internal/infrastructure/persistence"
	"github.com/streetmart/backend/internal/infrastructure/telemetry"
	"github.com/streetmart/backend/internal/interfaces/http/router"
)

//	@title			StreetMart API
//	@version		1.0
//	@description	Marketplace backend connecting street-food vendors with wholesale suppliers.
//	@description	Vendors browse supplier listings and place single-supplier orders; suppliers track and advance them.

//	@contact.name	StreetMart Engineering
//	@contact.url	https://github.com/streetmart/backend

//	@license.name	Apache 2.0
//	@license.url	http://www.apache.org/licenses/LICENSE-2.0.html

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

const shutdownTimeout = 30 * time.Second

func main() {
	// a missing .env is normal outside local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	bootLog := logger.New(logCfg)

	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, cfg.Telemetry, bootLog)
	if err != nil {
		bootLog.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	defer func() {
		if err := providers.Shutdown(context.Background()); err != nil {
			bootLog.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	log := logger.New(logCfg, providers.ZapCore(logger.ParseLevel(cfg.Log.Level)))
	defer func() { _ = log.Sync() }()

	log.Info("Starting StreetMart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
		zap.Bool("telemetry", providers.Enabled()),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Database.LogLevel))
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected", zap.String("driver", db.DriverName()))

	if db.DriverName() == config.DriverSQLite {
		// the SQL migrations target postgres; sqlite gets its schema from the models
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}

	if providers.Enabled() && cfg.Telemetry.DBTraceEnabled {
		if err := telemetry.RegisterGormTracing(db.DB, db.DriverName(), 0, log); err != nil {
			log.Warn("Database tracing disabled", zap.Error(err))
		}
	}

	app, err := wire(ctx, cfg, db, providers, log)
	if err != nil {
		log.Fatal("Failed to wire application", zap.Error(err))
	}
	defer app.Close()

	engineCfg := router.EngineConfig{
		Logger:           log,
		HTTP:             cfg.HTTP,
		Swagger:          cfg.Swagger,
		JWTService:       app.jwtService,
		TokenBlacklist:   app.blacklist,
		ProfilingEnabled: cfg.Telemetry.ProfilingEnabled,
		SwaggerHandler:   ginSwagger.WrapHandler(swaggerFiles.Handler),
	}
	if providers.Enabled() {
		engineCfg.ServiceName = cfg.Telemetry.ServiceName
		engineCfg.Meter = providers.MeterFor("streetmart/http")
	}
	engine := router.NewEngine(engineCfg, app.handlers)
	defer engine.Close()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		log.Info("Shutting down server", zap.String("signal", sig.String()))
	case err := <-serveErr:
		log.Error("Server failed", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}
