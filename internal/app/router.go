package app

import (
	"net/http"
	"time"

	"github.com/gin-contrib/gzip"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"rides/internal/handler"
	"rides/internal/middleware"
	"rides/internal/redis"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	RideHandler *handler.RideHandler
	Logger      *zap.Logger

	// Optional. Nil values switch the matching feature off.
	Probes           http.Handler
	IdempotencyStore redis.ResponseStore
	IdempotencyLocks redis.Locker
	NewRelicApp      *newrelic.Application
	Registry         *prometheus.Registry
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(middleware.RequestID())
	router.Use(ginzap.GinzapWithConfig(deps.Logger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health", "/live", "/ready", "/metrics"},
		Context: func(c *gin.Context) []zap.Field {
			return []zap.Field{zap.String("request_id", middleware.GetRequestID(c))}
		},
	}))
	router.Use(ginzap.RecoveryWithZap(deps.Logger, true))
	router.Use(middleware.CORSMiddleware())
	// Idempotency must sit inside gzip so it caches and replays plain bodies.
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	if deps.Registry != nil {
		metrics := middleware.NewMetrics(deps.Registry)
		router.Use(metrics.Middleware())
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{})))
	}

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
		router.Use(middleware.NewRelicAttributes())
	}

	if deps.IdempotencyStore != nil && deps.IdempotencyLocks != nil {
		router.Use(middleware.IdempotencyMiddleware(deps.IdempotencyStore, deps.IdempotencyLocks, deps.Logger))
	}

	// Health checks.
	router.GET("/health", handler.Health)
	if deps.Probes != nil {
		router.GET("/live", gin.WrapH(deps.Probes))
		router.GET("/ready", gin.WrapH(deps.Probes))
	}

	rides := router.Group("/rides")
	{
		rides.POST("", deps.RideHandler.CreateRide)
		rides.GET("", deps.RideHandler.GetAll)
		rides.GET("/:id", deps.RideHandler.GetRide)
	}

	return router
}
