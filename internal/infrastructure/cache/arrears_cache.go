package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rentdesk/backend/internal/domain/ledger"
	"github.com/rentdesk/backend/internal/domain/shared/valueobject"
)

const defaultArrearsPrefix = "rentdesk:arrears:"

// ArrearsCache stores arrears rollups per tenant and as-of date. Any
// allocation touching a tenant must call Invalidate for that tenant.
type ArrearsCache interface {
	Get(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) (*ledger.TenantArrears, bool, error)
	Set(ctx context.Context, arrears *ledger.TenantArrears, ttl time.Duration) error
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// RedisArrearsCache keeps arrears rollups in one redis hash per tenant,
// keyed by as-of date, so invalidating a tenant is a single DEL.
type RedisArrearsCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisArrearsCache creates the cache on an existing client
func NewRedisArrearsCache(client redis.UniversalClient, keyPrefix string) *RedisArrearsCache {
	if keyPrefix == "" {
		keyPrefix = defaultArrearsPrefix
	}
	return &RedisArrearsCache{client: client, keyPrefix: keyPrefix}
}

func (c *RedisArrearsCache) key(tenantID uuid.UUID) string {
	return c.keyPrefix + tenantID.String()
}

// Get returns the cached rollup for tenantID as of asOf
func (c *RedisArrearsCache) Get(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) (*ledger.TenantArrears, bool, error) {
	raw, err := c.client.HGet(ctx, c.key(tenantID), asOf.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read arrears cache: %w", err)
	}

	var out ledger.TenantArrears
	if err := json.Unmarshal(raw, &out); err != nil {
		// A corrupt entry is a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return &out, true, nil
}

// Set stores the rollup and refreshes the tenant hash TTL
func (c *RedisArrearsCache) Set(ctx context.Context, arrears *ledger.TenantArrears, ttl time.Duration) error {
	raw, err := json.Marshal(arrears)
	if err != nil {
		return fmt.Errorf("failed to encode arrears: %w", err)
	}
	key := c.key(arrears.TenantID)
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, arrears.AsOf.String(), raw)
		pipe.Expire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write arrears cache: %w", err)
	}
	return nil
}

// Invalidate drops every cached rollup of the tenant
func (c *RedisArrearsCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	if err := c.client.Del(ctx, c.key(tenantID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate arrears cache: %w", err)
	}
	return nil
}

type arrearsEntry struct {
	value     ledger.TenantArrears
	expiresAt time.Time
}

// InMemoryArrearsCache is the process-local fallback used without redis
type InMemoryArrearsCache struct {
	mu      sync.RWMutex
	tenants map[uuid.UUID]map[string]arrearsEntry
	now     func() time.Time
}

// NewInMemoryArrearsCache creates an empty cache
func NewInMemoryArrearsCache() *InMemoryArrearsCache {
	return &InMemoryArrearsCache{
		tenants: make(map[uuid.UUID]map[string]arrearsEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the cached rollup
func (c *InMemoryArrearsCache) Get(ctx context.Context, tenantID uuid.UUID, asOf valueobject.Date) (*ledger.TenantArrears, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.tenants[tenantID][asOf.String()]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	out := e.value
	return &out, true, nil
}

// Set stores a copy of arrears until ttl elapses
func (c *InMemoryArrearsCache) Set(ctx context.Context, arrears *ledger.TenantArrears, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	byDate, ok := c.tenants[arrears.TenantID]
	if !ok {
		byDate = make(map[string]arrearsEntry)
		c.tenants[arrears.TenantID] = byDate
	}
	byDate[arrears.AsOf.String()] = arrearsEntry{value: *arrears, expiresAt: c.now().Add(ttl)}
	return nil
}

// Invalidate drops every cached rollup of the tenant
func (c *InMemoryArrearsCache) Invalidate(ctx context.Context, tenantID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.tenants, tenantID)
	return nil
}

var (
	_ ArrearsCache = (*RedisArrearsCache)(nil)
	_ ArrearsCache = (*InMemoryArrearsCache)(nil)
)
