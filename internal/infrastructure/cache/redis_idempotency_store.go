package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rentdesk/backend/internal/domain/shared"
)

const (
	defaultIdempotencyPrefix = "rentdesk:idempotency:"

	pendingMarker = "pending"
	donePrefix    = "done:"
)

// RedisIdempotencyStore implements shared.IdempotencyStore on redis so every
// API instance sees the same Idempotency-Key state.
type RedisIdempotencyStore struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisIdempotencyStore creates a store on an existing client.
// An empty keyPrefix uses "rentdesk:idempotency:".
func NewRedisIdempotencyStore(client redis.UniversalClient, keyPrefix string) *RedisIdempotencyStore {
	if keyPrefix == "" {
		keyPrefix = defaultIdempotencyPrefix
	}
	return &RedisIdempotencyStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Reserve claims key with SET NX so only one request wins
func (s *RedisIdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, s.keyPrefix+key, pendingMarker, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to reserve idempotency key: %w", err)
	}
	return ok, nil
}

// Complete overwrites the reservation with the produced resource ID
func (s *RedisIdempotencyStore) Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, donePrefix+resourceID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to complete idempotency key: %w", err)
	}
	return nil
}

// Lookup returns the resource recorded for key
func (s *RedisIdempotencyStore) Lookup(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, s.keyPrefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	resourceID, done := strings.CutPrefix(val, donePrefix)
	if !done {
		return "", false, nil
	}
	return resourceID, true, nil
}

// releaseScript deletes the key only while it still holds the pending marker
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Release drops a pending reservation, leaving completed keys in place
func (s *RedisIdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.keyPrefix + key}, pendingMarker).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to release idempotency key: %w", err)
	}
	return nil
}

// Close is a no-op; the client belongs to whoever created it
func (s *RedisIdempotencyStore) Close() error {
	return nil
}

var _ shared.IdempotencyStore = (*RedisIdempotencyStore)(nil)
