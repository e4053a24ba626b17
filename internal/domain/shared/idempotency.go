package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers client-supplied request keys so a retried
// create request returns the original result instead of acting twice.
type IdempotencyStore interface {
	// Reserve claims key for ttl. It returns false when the key is already
	// reserved or completed.
	Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// Complete records the resource produced for key.
	Complete(ctx context.Context, key, resourceID string, ttl time.Duration) error

	// Lookup returns the resource recorded for key. ok is false while the key
	// is unknown or still pending.
	Lookup(ctx context.Context, key string) (resourceID string, ok bool, err error)

	// Release drops a reservation after a failed attempt so the client may retry.
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}

// IdempotencyConfig holds configuration for idempotency handling
type IdempotencyConfig struct {
	// TTL is how long a key is remembered. Default: 24 hours
	TTL time.Duration

	// Enabled determines whether idempotency checking is enabled
	Enabled bool
}

// DefaultIdempotencyConfig returns the default idempotency configuration
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		TTL:     24 * time.Hour,
		Enabled: true,
	}
}
