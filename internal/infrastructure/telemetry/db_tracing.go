package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type contextKey string

const queryStartTimeKey contextKey = "db_query_start"

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bound variables in db.statement; never in production
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string
	TracerProvider  trace.TracerProvider // nil uses the global provider
}

// DefaultDBTracingConfig returns tracing disabled with a 200ms slow threshold
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBSystem:        "postgresql",
	}
}

// DBTracingFromAppConfig builds the tracing config for the configured database driver
func DBTracingFromAppConfig(tel config.TelemetryConfig, driver string) DBTracingConfig {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = tel.Enabled && tel.DBTraceEnabled
	cfg.LogFullSQL = tel.DBLogFullSQL
	if driver == config.DriverSQLite {
		cfg.DBSystem = "sqlite"
	}
	return cfg
}

// DBTracingPlugin registers otelgorm plus a callback flagging slow statements.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
}

// NewDBTracingPlugin creates a new database tracing plugin.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger) *DBTracingPlugin {
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = 200 * time.Millisecond
	}
	return &DBTracingPlugin{config: cfg, logger: logger}
}

// Register installs tracing on db. It is a no-op when tracing is disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(p.config.DBSystem)}
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

// registerCallbacks brackets every gorm operation. The after hook runs
// before otelgorm ends the span so attributes land on it.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	register := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("ledger_timing:before_create", markStart) },
		func() error { return cb.Query().Before("gorm:query").Register("ledger_timing:before_query", markStart) },
		func() error { return cb.Update().Before("gorm:update").Register("ledger_timing:before_update", markStart) },
		func() error { return cb.Delete().Before("gorm:delete").Register("ledger_timing:before_delete", markStart) },
		func() error { return cb.Row().Before("gorm:row").Register("ledger_timing:before_row", markStart) },
		func() error { return cb.Raw().Before("gorm:raw").Register("ledger_timing:before_raw", markStart) },
		func() error {
			return cb.Create().After("gorm:create").Before("otel:after_create").Register("ledger_timing:after_create", p.afterQuery)
		},
		func() error {
			return cb.Query().After("gorm:query").Before("otel:after_query").Register("ledger_timing:after_query", p.afterQuery)
		},
		func() error {
			return cb.Update().After("gorm:update").Before("otel:after_update").Register("ledger_timing:after_update", p.afterQuery)
		},
		func() error {
			return cb.Delete().After("gorm:delete").Before("otel:after_delete").Register("ledger_timing:after_delete", p.afterQuery)
		},
		func() error {
			return cb.Row().After("gorm:row").Before("otel:after_row").Register("ledger_timing:after_row", p.afterQuery)
		},
		func() error {
			return cb.Raw().After("gorm:raw").Before("otel:after_raw").Register("ledger_timing:after_raw", p.afterQuery)
		},
	}
	for _, r := range register {
		if err := r(); err != nil {
			return err
		}
	}
	return nil
}

func markStart(db *gorm.DB) {
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
	if db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		span.SetStatus(codes.Error, db.Error.Error())
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
			attribute.Int64("threshold_ms", p.config.SlowQueryThresh.Milliseconds()),
		))
		p.logger.Warn("Slow query detected",
			zap.String("table", db.Statement.Table),
			zap.Duration("duration", elapsed),
		)
	}
}
