package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Stores bundles the caches used by the ledger service. Client is nil when
// the in-memory fallbacks are in use.
type Stores struct {
	Client      *redis.Client
	Idempotency shared.IdempotencyStore
	Arrears     ArrearsCache
}

// Close releases the idempotency store and the redis client
func (s *Stores) Close() error {
	if err := s.Idempotency.Close(); err != nil {
		return err
	}
	if s.Client != nil {
		return s.Client.Close()
	}
	return nil
}

// Factory creates cache stores based on configuration
type Factory struct {
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
	pingTimeout           time.Duration
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*Factory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether an unreachable redis degrades to the
// in-memory stores. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *Factory) {
		f.allowInMemoryFallback = allow
	}
}

// NewFactory creates a new factory
func NewFactory(cfg config.RedisConfig, opts ...FactoryOption) *Factory {
	f := &Factory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
		pingTimeout:           5 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewRedisClient connects to redis and verifies the connection with PING
func (f *Factory) NewRedisClient(ctx context.Context) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     f.redisConfig.Addr(),
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, f.pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", f.redisConfig.Addr(), err)
	}
	return client, nil
}

// InMemory returns process-local stores
func (f *Factory) InMemory() *Stores {
	return &Stores{
		Idempotency: NewInMemoryIdempotencyStore(0),
		Arrears:     NewInMemoryArrearsCache(),
	}
}

// Create returns redis-backed stores when redis is enabled and reachable.
// Otherwise it falls back to in-memory stores, unless fallback is disabled.
func (f *Factory) Create(ctx context.Context) (*Stores, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("Redis disabled, using in-memory ledger caches")
		return f.InMemory(), nil
	}

	client, err := f.NewRedisClient(ctx)
	if err == nil {
		f.logger.Info("Using Redis ledger caches", zap.String("addr", f.redisConfig.Addr()))
		return &Stores{
			Client:      client,
			Idempotency: NewRedisIdempotencyStore(client, ""),
			Arrears:     NewRedisArrearsCache(client, ""),
		}, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("redis required for ledger caches but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory ledger caches. "+
		"Idempotency keys are not shared across instances.",
		zap.Error(err),
	)
	return f.InMemory(), nil
}
