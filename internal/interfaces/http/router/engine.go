package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/infrastructure/logger"
	"github.com/mveges/grocery/internal/interfaces/http/dto"
	"github.com/mveges/grocery/internal/interfaces/http/handler"
	"github.com/mveges/grocery/internal/interfaces/http/middleware"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Options configures the middleware stack of the engine
type Options struct {
	ServiceName    string
	Logger         *zap.Logger
	TracingEnabled bool
	TracerProvider trace.TracerProvider
	// Meter enables HTTP request metrics when set
	Meter          metric.Meter
	CORS           middleware.CORSConfig
	TrustedProxies []string
	MaxBodySize    int64
	// IdempotencyStore enables the Idempotency-Key check on POST routes when set
	IdempotencyStore shared.IdempotencyStore
	IdempotencyTTL   time.Duration
}

// Handlers are the endpoint handlers mounted on the engine
type Handlers struct {
	Health   *handler.HealthHandler
	Customer *handler.CustomerHandler
	Product  *handler.ProductHandler
	Store    *handler.StoreHandler
}

// NewEngine builds the gin engine with the full middleware chain and all routes:
//
//	GET  /health
//	POST /api/v1/customers       GET /api/v1/customers       GET /api/v1/customers/:id
//	POST /api/v1/products        GET /api/v1/products        GET /api/v1/products/:id
//	GET  /api/v1/store           GET /api/v1/activity
func NewEngine(opts Options, h Handlers) (*gin.Engine, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.HandleMethodNotAllowed = true
	// nil trusts no proxy, so ClientIP is the peer address
	if err := engine.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return nil, fmt.Errorf("set trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName:    opts.ServiceName,
		Enabled:        opts.TracingEnabled,
		TracerProvider: opts.TracerProvider,
	}))
	if opts.TracingEnabled {
		engine.Use(middleware.SpanAttributes())
	}
	if opts.Meter != nil {
		httpMetrics, err := middleware.HTTPMetrics(opts.Meter)
		if err != nil {
			return nil, fmt.Errorf("http metrics: %w", err)
		}
		engine.Use(httpMetrics)
	}
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(opts.CORS))
	if opts.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(opts.MaxBodySize))
	}

	if h.Health != nil {
		engine.GET("/health", h.Health.Check)
	}

	idempotency := middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  opts.IdempotencyStore,
		TTL:    opts.IdempotencyTTL,
		Logger: log,
	})

	r := NewRouter(engine, WithAPIVersion("v1"))

	if h.Customer != nil {
		r.Register(NewDomainGroup("customers", "/customers").
			POST("", idempotency, h.Customer.Register).
			GET("", h.Customer.List).
			GET("/:id", h.Customer.GetByID))
	}
	if h.Product != nil {
		r.Register(NewDomainGroup("products", "/products").
			POST("", idempotency, h.Product.Add).
			GET("", h.Product.List).
			GET("/:id", h.Product.GetByID))
	}
	if h.Store != nil {
		r.Register(NewDomainGroup("store", "/store").GET("", h.Store.Info))
		r.Register(NewDomainGroup("activity", "/activity").GET("", h.Store.Activity))
	}

	r.Setup()

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, dto.NewErrorResponseWithRequestID(dto.ErrCodeBadRequest, "Method not allowed", middleware.GetRequestID(c)))
	})
	return engine, nil
}
