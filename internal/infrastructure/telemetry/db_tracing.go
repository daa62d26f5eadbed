package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans; development only
	SlowQueryThresh time.Duration // queries slower than this are flagged on their span
	DBSystem        string        // "sqlite" or "postgresql"
	DBName          string

	// TracerProvider overrides the global provider; tests use it to capture spans.
	TracerProvider trace.TracerProvider
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "sqlite",
	}
}

// DBTracingPlugin is a gorm.Plugin that installs otelgorm and annotates its
// spans with table, row count, error and slow-query information.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin with the given configuration.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{
		config: cfg,
		logger: logger,
	}
}

// Name implements gorm.Plugin
func (p *DBTracingPlugin) Name() string {
	return "grocery:db_tracing"
}

// Initialize implements gorm.Plugin
func (p *DBTracingPlugin) Initialize(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithAttributes(attribute.String("db.system", p.config.DBSystem)),
	}
	if p.config.DBName != "" {
		opts = append(opts, otelgorm.WithDBName(p.config.DBName))
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if p.config.TracerProvider != nil {
		opts = append(opts, otelgorm.WithTracerProvider(p.config.TracerProvider))
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
		zap.String("db_system", p.config.DBSystem),
	)
	return nil
}

type registrar interface {
	Register(name string, fn func(*gorm.DB)) error
}

// registerCallbacks marks the start of every statement and annotates the
// otelgorm span before otelgorm ends it.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	hooks := []struct {
		callback registrar
		name     string
		hook     func(*gorm.DB)
	}{
		{cb.Create().Before("gorm:create"), "before_create", markQueryStart},
		{cb.Query().Before("gorm:query"), "before_query", markQueryStart},
		{cb.Update().Before("gorm:update"), "before_update", markQueryStart},
		{cb.Delete().Before("gorm:delete"), "before_delete", markQueryStart},
		{cb.Row().Before("gorm:row"), "before_row", markQueryStart},
		{cb.Raw().Before("gorm:raw"), "before_raw", markQueryStart},
		{cb.Create().After("gorm:create").Before("otel:after:create"), "after_create", p.afterQuery},
		{cb.Query().After("gorm:query").Before("otel:after:query"), "after_query", p.afterQuery},
		{cb.Update().After("gorm:update").Before("otel:after:update"), "after_update", p.afterQuery},
		{cb.Delete().After("gorm:delete").Before("otel:after:delete"), "after_delete", p.afterQuery},
		{cb.Row().After("gorm:row").Before("otel:after:row"), "after_row", p.afterQuery},
		{cb.Raw().After("gorm:raw").Before("otel:after:raw"), "after_raw", p.afterQuery},
	}

	errs := make([]error, 0, len(hooks))
	for _, h := range hooks {
		errs = append(errs, h.callback.Register("grocery_timing:"+h.name, h.hook))
	}
	return errors.Join(errs...)
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func (p *DBTracingPlugin) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}

	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if db.Statement.RowsAffected >= 0 {
		span.SetAttributes(attribute.Int64("db.rows_affected", db.Statement.RowsAffected))
	}
	if db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}

	// A missing record is a normal lookup outcome, not a failure.
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
		span.RecordError(db.Error)
	}

	startTime, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	if elapsed := time.Since(startTime); elapsed > p.config.SlowQueryThresh {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
		span.AddEvent("slow_query_warning", trace.WithAttributes(
			attribute.Int64("duration_ms", elapsed.Milliseconds()),
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
	}
}

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

var _ gorm.Plugin = (*DBTracingPlugin)(nil)
