// Package bootstrap wires configuration into a running ledger: database,
// schema, caches, allocation strategy and the application service. The HTTP
// server and the admin CLI share it.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	ledgerapp "github.com/rentdesk/backend/internal/application/ledger"
	"github.com/rentdesk/backend/internal/domain/ledger"
	domainstrategy "github.com/rentdesk/backend/internal/domain/shared/strategy"
	"github.com/rentdesk/backend/internal/infrastructure/cache"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/rentdesk/backend/internal/infrastructure/logger"
	"github.com/rentdesk/backend/internal/infrastructure/migration"
	"github.com/rentdesk/backend/internal/infrastructure/persistence"
	"github.com/rentdesk/backend/internal/infrastructure/persistence/models"
	"github.com/rentdesk/backend/internal/infrastructure/strategy"
	"github.com/rentdesk/backend/internal/infrastructure/telemetry"
	"github.com/rentdesk/backend/migrations"
	"go.uber.org/zap"
)

// Ledger is a fully wired ledger service and the resources behind it
type Ledger struct {
	DB      *persistence.Database
	Stores  *cache.Stores
	Service *ledgerapp.Service
	Policy  *ledger.LateFeePolicy
}

// Options tune what Open wires in
type Options struct {
	// Migrate brings the schema up to date before the service is built
	Migrate bool
	// MeterProvider enables ledger metrics when non-nil and enabled
	MeterProvider *telemetry.MeterProvider
}

// Open connects to the database and caches and builds the ledger service
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger, opts Options) (*Ledger, error) {
	db, err := OpenDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if opts.Migrate {
		if err := Migrate(db, cfg.Database, log); err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	stores, err := cache.NewFactory(cfg.Redis, cache.WithLogger(log)).Create(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	l := &Ledger{DB: db, Stores: stores}
	if err := l.buildService(cfg, log, opts.MeterProvider); err != nil {
		_ = l.Close()
		return nil, err
	}
	return l, nil
}

// OpenDatabase connects with a zap-backed gorm logger and the otelgorm plugin
func OpenDatabase(cfg *config.Config, log *zap.Logger) (*persistence.Database, error) {
	gormLog := logger.NewGormLogger(log, logger.GormLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return nil, err
	}

	plugin := telemetry.NewDBTracingPlugin(telemetry.DBTracingFromAppConfig(cfg.Telemetry, cfg.Database.Driver), log)
	if err := plugin.Register(db.DB); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to register database tracing: %w", err)
	}

	log.Info("Database connected", zap.String("driver", cfg.Database.Driver))
	return db, nil
}

// Migrate applies the embedded SQL migrations on postgres. sqlite databases
// are created from the gorm models instead.
func Migrate(db *persistence.Database, cfg config.DatabaseConfig, log *zap.Logger) error {
	if cfg.Driver == config.DriverSQLite {
		if err := db.DB.AutoMigrate(models.AllModels()...); err != nil {
			return fmt.Errorf("failed to create sqlite schema: %w", err)
		}
		return nil
	}

	// The migrator closes the connection it is given, so it gets its own.
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	m, err := migration.NewEmbedded(sqlDB, migrations.FS, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Error closing migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// ResolveStrategy returns the configured waterfall, or the registry default
func ResolveStrategy(name string) (domainstrategy.WaterfallStrategy, error) {
	registry, err := strategy.NewRegistryWithDefaults()
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = registry.GetDefault(domainstrategy.StrategyTypeAllocation)
	}
	return registry.GetWaterfallStrategy(name)
}

func (l *Ledger) buildService(cfg *config.Config, log *zap.Logger, mp *telemetry.MeterProvider) error {
	waterfall, err := ResolveStrategy(cfg.Ledger.Strategy)
	if err != nil {
		return err
	}
	policy, err := ledgerapp.NewLateFeePolicy(cfg.Ledger)
	if err != nil {
		return err
	}

	var metrics *telemetry.LedgerMetrics
	if mp != nil && mp.IsEnabled() {
		if metrics, err = telemetry.NewLedgerMetrics(mp.Meter("ledger")); err != nil {
			return fmt.Errorf("failed to register ledger metrics: %w", err)
		}
	}

	repo := persistence.NewGormLedgerRepository(l.DB.DB)
	uow := persistence.NewLedgerUnitOfWork(l.DB)
	engine := ledger.NewAllocationEngine(uow, waterfall, ledger.WithLateFeePolicy(policy))

	l.Policy = policy
	l.Service = ledgerapp.NewService(uow, repo, repo.Leases(), engine,
		ledgerapp.WithIdempotencyStore(l.Stores.Idempotency, cfg.Ledger.IdempotencyTTL),
		ledgerapp.WithArrearsCache(l.Stores.Arrears, cfg.Ledger.ArrearsCacheTTL),
		ledgerapp.WithMaxRetries(cfg.Ledger.AllocationMaxRetries),
		ledgerapp.WithMetrics(metrics),
		ledgerapp.WithLogger(log),
	)

	log.Info("Ledger service ready",
		zap.String("strategy", waterfall.Name()),
		zap.Int("grace_days", policy.GraceDays()),
		zap.Int("max_retries", cfg.Ledger.AllocationMaxRetries),
	)
	return nil
}

// Close releases caches and the database
func (l *Ledger) Close() error {
	var errs []error
	if l.Stores != nil {
		errs = append(errs, l.Stores.Close())
	}
	if l.DB != nil {
		errs = append(errs, l.DB.Close())
	}
	return errors.Join(errs...)
}
