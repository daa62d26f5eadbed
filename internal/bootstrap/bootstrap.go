// Package bootstrap assembles the store from configuration: storage, event bus,
// subscribers and application services. The HTTP server and the CLI share it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/mveges/grocery/internal/application/activity"
	catalogapp "github.com/mveges/grocery/internal/application/catalog"
	partnerapp "github.com/mveges/grocery/internal/application/partner"
	storeapp "github.com/mveges/grocery/internal/application/store"
	"github.com/mveges/grocery/internal/domain/catalog"
	"github.com/mveges/grocery/internal/domain/partner"
	"github.com/mveges/grocery/internal/domain/shared"
	"github.com/mveges/grocery/internal/domain/store"
	"github.com/mveges/grocery/internal/infrastructure/cache"
	"github.com/mveges/grocery/internal/infrastructure/config"
	"github.com/mveges/grocery/internal/infrastructure/event"
	"github.com/mveges/grocery/internal/infrastructure/idgen"
	"github.com/mveges/grocery/internal/infrastructure/logger"
	"github.com/mveges/grocery/internal/infrastructure/persistence"
	"github.com/mveges/grocery/internal/infrastructure/seed"
	"github.com/mveges/grocery/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProductIDPrefix prefixes every product ID (PRD-0001)
const ProductIDPrefix = "PRD"

// Options carries the optional collaborators of Build
type Options struct {
	// Meter enables the store metrics subscriber when set
	Meter metric.Meter
	// SkipSeed ignores cfg.Seed.File
	SkipSeed bool
}

// App holds the assembled services and the resources they own
type App struct {
	Config           *config.Config
	Logger           *zap.Logger
	Repositories     *persistence.Repositories
	EventBus         *event.InMemoryEventBus
	IdempotencyStore shared.IdempotencyStore
	ActivityLog      *activity.Log

	Customers *partnerapp.CustomerService
	Products  *catalogapp.ProductService
	Store     *storeapp.Service

	// SeedResult is nil when no fixture was loaded
	SeedResult *seed.Result
}

// Build wires the application for cfg. The caller must Close the returned App.
func Build(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}

	settings, err := store.NewSettings(cfg.Store.Name, cfg.Store.Location, cfg.Store.Currency, cfg.Store.IsOpen)
	if err != nil {
		return nil, err
	}

	var plugins []gorm.Plugin
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		plugins = append(plugins, telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
			Enabled:         true,
			LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBSystem:        cfg.Storage.Driver,
			DBName:          cfg.Storage.DBName,
		}, log))
	}

	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level), cfg.Telemetry.DBSlowQueryThresh)
	repos, err := persistence.NewRepositories(ctx, cfg.Storage, gormLog, plugins...)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	app := &App{
		Config:       cfg,
		Logger:       log,
		Repositories: repos,
	}

	if err := app.wire(ctx, settings, opts); err != nil {
		return nil, errors.Join(err, app.Close(ctx))
	}

	if cfg.Seed.File != "" && !opts.SkipSeed {
		loader := seed.NewLoader(app.Customers, app.Products, log)
		result, err := loader.LoadFile(ctx, cfg.Seed.File)
		if err != nil {
			return nil, errors.Join(err, app.Close(ctx))
		}
		app.SeedResult = result
	}

	log.Info("store assembled",
		zap.String("store", settings.Name),
		zap.String("storage", cfg.Storage.Driver),
		zap.String("idempotency_backend", cfg.Idempotency.Backend),
	)
	return app, nil
}

func (a *App) wire(ctx context.Context, settings store.Settings, opts Options) error {
	cfg := a.Config

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(
		cfg.Idempotency.Backend,
		cfg.Redis,
		cache.WithLogger(a.Logger),
	).CreateStore(ctx)
	if err != nil {
		return err
	}
	a.IdempotencyStore = idempotencyStore

	a.EventBus = event.NewInMemoryEventBus(a.Logger)
	a.ActivityLog = activity.NewLog(cfg.Activity.Capacity)

	activityHandler := event.NewIdempotentHandler(
		activity.NewHandler(a.ActivityLog),
		idempotencyStore,
		shared.IdempotencyConfig{Enabled: cfg.Idempotency.Enabled, TTL: cfg.Idempotency.TTL},
		a.Logger,
	)
	a.EventBus.Subscribe(activityHandler)

	if opts.Meter != nil {
		storeMetrics, err := telemetry.NewStoreMetrics(opts.Meter)
		if err != nil {
			return fmt.Errorf("store metrics: %w", err)
		}
		a.EventBus.Subscribe(storeMetrics)
	}

	lastProduct, err := lastProductSequence(ctx, a.Repositories.Products)
	if err != nil {
		return fmt.Errorf("resume product ids: %w", err)
	}

	discounts := partner.DefaultMembershipDiscounts()

	a.Customers = partnerapp.NewCustomerService(a.Repositories.Customers, idgen.NewTimestamp(nil), discounts)
	a.Customers.SetEventPublisher(a.EventBus)
	a.Customers.SetLogger(a.Logger.Named("customer"))

	a.Products = catalogapp.NewProductService(a.Repositories.Products, idgen.NewSequence(ProductIDPrefix, 4, lastProduct), settings.Currency)
	a.Products.SetEventPublisher(a.EventBus)
	a.Products.SetLogger(a.Logger.Named("product"))

	a.Store = storeapp.NewService(settings, discounts, a.Repositories.Customers, a.Repositories.Products)

	return a.EventBus.Start(ctx)
}

// lastProductSequence returns the highest sequence number among stored product IDs.
// New IDs continue after it.
func lastProductSequence(ctx context.Context, repo catalog.ProductRepository) (int64, error) {
	products, err := repo.FindAll(ctx, shared.Filter{})
	if err != nil {
		return 0, err
	}
	var last int64
	for _, p := range products {
		if n, ok := idgen.SequenceNumber(ProductIDPrefix, p.ID); ok && n > last {
			last = n
		}
	}
	return last, nil
}

// Close stops the event bus and releases the idempotency store and the database
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.EventBus != nil {
		errs = append(errs, a.EventBus.Stop(ctx))
	}
	if a.IdempotencyStore != nil {
		errs = append(errs, a.IdempotencyStore.Close())
	}
	if a.Repositories != nil {
		errs = append(errs, a.Repositories.Close())
	}
	return errors.Join(errs...)
}
