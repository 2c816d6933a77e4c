package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/streetmart/backend/internal/infrastructure/auth"
	"github.com/streetmart/backend/internal/infrastructure/config"
	"github.com/streetmart/backend/internal/infrastructure/logger"
	"github.com/streetmart/backend/internal/interfaces/http/middleware"
)

// EngineConfig holds everything the HTTP engine is built from
type EngineConfig struct {
	Logger         *zap.Logger
	HTTP           config.HTTPConfig
	Swagger        config.SwaggerConfig
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	// ServiceName enables otelgin tracing when non-empty
	ServiceName      string
	Meter            metric.Meter
	ProfilingEnabled bool

	// SwaggerHandler serves /swagger/*any; nil leaves the route unregistered
	SwaggerHandler gin.HandlerFunc
}

// Engine is the configured gin engine plus the limiters it owns
type Engine struct {
	*gin.Engine
	limiters []*middleware.RateLimiter
}

// Close stops the rate limiters' background cleanup
func (e *Engine) Close() {
	for _, l := range e.limiters {
		l.Stop()
	}
}

// NewEngine builds the engine with the full middleware chain and all routes.
//
// Engine-wide order: request ID, panic recovery, request logging, tracing,
// metrics, security headers, CORS, body limit, rate limit. API routes then run
// JWT authentication, span enrichment and profiling labels.
func NewEngine(cfg EngineConfig, h Handlers) *Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	e := &Engine{Engine: engine}

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	if cfg.ServiceName != "" {
		engine.Use(middleware.Tracing(cfg.ServiceName))
		engine.Use(middleware.SpanErrorMarker())
	}
	engine.Use(middleware.HTTPMetrics(cfg.Meter))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(corsConfig(cfg.HTTP)))
	if cfg.HTTP.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	}
	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.GET("/health", h.System.Health)
	engine.NoRoute(h.System.NoRoute)

	r := NewRouter(engine, WithAPIVersion("v1"))

	jwtConfig := middleware.DefaultJWTConfig(cfg.JWTService)
	jwtConfig.TokenBlacklist = cfg.TokenBlacklist
	jwtConfig.Logger = log
	jwtConfig.SkipPaths = append(jwtConfig.SkipPaths,
		r.BasePath()+"/system/ping",
		r.BasePath()+"/system/info",
	)

	if cfg.SwaggerHandler != nil {
		// the docs route is outside the API group; its own JWT check has no skip list
		docsJWT := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     cfg.JWTService,
			TokenBlacklist: cfg.TokenBlacklist,
			Logger:         log,
		})
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger, docsJWT), cfg.SwaggerHandler)
	}

	var authLimiter gin.HandlerFunc
	if cfg.HTTP.AuthRateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		e.limiters = append(e.limiters, limiter)
		authLimiter = middleware.RateLimitByKey(limiter, func(c *gin.Context) string {
			return "auth:" + c.ClientIP()
		})
	}

	r.Use(
		middleware.JWTAuthMiddlewareWithConfig(jwtConfig),
		middleware.TracingAttributeInjector(),
		middleware.Profiling(cfg.ProfilingEnabled),
	)
	for _, group := range MarketplaceRoutes(h, authLimiter) {
		r.Register(group)
	}
	r.Setup()

	return e
}

func corsConfig(cfg config.HTTPConfig) middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	if len(cfg.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.CORSAllowOrigins
	}
	if len(cfg.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.CORSAllowMethods
	}
	if len(cfg.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.CORSAllowHeaders
	}
	cors.AllowCredentials = true
	cors.MaxAge = 12 * time.Hour
	return cors
}
