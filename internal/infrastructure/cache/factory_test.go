package cache

import (
	"context"
	"testing"
	"time"

	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis points at a port nothing listens on
var unreachableRedis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1}

func TestFactory_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled redis uses in-memory stores", func(t *testing.T) {
		stores, err := NewFactory(config.RedisConfig{Enabled: false}).Create(ctx)
		require.NoError(t, err)
		defer stores.Close()

		assert.Nil(t, stores.Client)
		assert.IsType(t, &InMemoryIdempotencyStore{}, stores.Idempotency)
		assert.IsType(t, &InMemoryArrearsCache{}, stores.Arrears)
	})

	t.Run("unreachable redis falls back", func(t *testing.T) {
		f := NewFactory(unreachableRedis)
		f.pingTimeout = 200 * time.Millisecond

		stores, err := f.Create(ctx)
		require.NoError(t, err)
		defer stores.Close()
		assert.Nil(t, stores.Client)
	})

	t.Run("unreachable redis without fallback fails", func(t *testing.T) {
		f := NewFactory(unreachableRedis, WithInMemoryFallback(false))
		f.pingTimeout = 200 * time.Millisecond

		_, err := f.Create(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis required")
	})
}
