package strategy

import (
	"context"
	"sync"
	"testing"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock waterfall strategy for testing
type mockWaterfallStrategy struct {
	strategy.BaseStrategy
}

func newMockWaterfallStrategy(name string) *mockWaterfallStrategy {
	return &mockWaterfallStrategy{
		BaseStrategy: strategy.NewBaseStrategy(name, strategy.StrategyTypeAllocation, "Mock waterfall strategy"),
	}
}

func (s *mockWaterfallStrategy) Distribute(ctx context.Context, amount decimal.Decimal, obligations []strategy.Obligation) (strategy.WaterfallResult, error) {
	return strategy.WaterfallResult{Remaining: amount}, nil
}

func TestRegisterWaterfallStrategy(t *testing.T) {
	r := NewStrategyRegistry()

	t.Run("successful registration", func(t *testing.T) {
		err := r.RegisterWaterfallStrategy(newMockWaterfallStrategy("test_waterfall"))
		assert.NoError(t, err)
		assert.Contains(t, r.ListWaterfallStrategies(), "test_waterfall")
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		s := newMockWaterfallStrategy("duplicate")
		require.NoError(t, r.RegisterWaterfallStrategy(s))

		err := r.RegisterWaterfallStrategy(s)
		assert.ErrorIs(t, err, shared.ErrAlreadyExists)
	})
}

func TestGetWaterfallStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterWaterfallStrategy(newMockWaterfallStrategy("get_waterfall")))

	t.Run("get by name", func(t *testing.T) {
		got, err := r.GetWaterfallStrategy("get_waterfall")
		require.NoError(t, err)
		assert.Equal(t, "get_waterfall", got.Name())
	})

	t.Run("not found", func(t *testing.T) {
		_, err := r.GetWaterfallStrategy("nonexistent")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("no default set", func(t *testing.T) {
		_, err := r.GetWaterfallStrategy("")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("get default when name is empty", func(t *testing.T) {
		require.NoError(t, r.SetDefault(strategy.StrategyTypeAllocation, "get_waterfall"))
		got, err := r.GetWaterfallStrategy("")
		require.NoError(t, err)
		assert.Equal(t, "get_waterfall", got.Name())
	})
}

func TestUnregisterWaterfallStrategy(t *testing.T) {
	r := NewStrategyRegistry()
	require.NoError(t, r.RegisterWaterfallStrategy(newMockWaterfallStrategy("gone")))
	require.NoError(t, r.SetDefault(strategy.StrategyTypeAllocation, "gone"))

	require.NoError(t, r.UnregisterWaterfallStrategy("gone"))
	assert.Empty(t, r.GetDefault(strategy.StrategyTypeAllocation))
	assert.ErrorIs(t, r.UnregisterWaterfallStrategy("gone"), shared.ErrNotFound)
}

func TestSetDefault(t *testing.T) {
	r := NewStrategyRegistry()

	t.Run("rejects unknown type", func(t *testing.T) {
		err := r.SetDefault(strategy.StrategyType("pricing"), "x")
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("rejects unregistered strategy", func(t *testing.T) {
		err := r.SetDefault(strategy.StrategyTypeAllocation, "missing")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestNewRegistryWithDefaults(t *testing.T) {
	r, err := NewRegistryWithDefaults()
	require.NoError(t, err)

	assert.Equal(t, []string{"fifo_fee_first"}, r.ListWaterfallStrategies())
	assert.Equal(t, "fifo_fee_first", r.GetDefault(strategy.StrategyTypeAllocation))

	s, err := r.GetWaterfallStrategy("")
	require.NoError(t, err)
	assert.Equal(t, strategy.StrategyTypeAllocation, s.Type())
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r, err := NewRegistryWithDefaults()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.GetWaterfallStrategy("")
			assert.NoError(t, err)
			_ = r.ListWaterfallStrategies()
		}()
	}
	wg.Wait()
}
