package strategy

import (
	"github.com/rentdesk/backend/internal/domain/shared/strategy"
	"github.com/rentdesk/backend/internal/infrastructure/strategy/allocation"
)

// NewRegistryWithDefaults creates a registry with the built-in waterfall
// registered and set as the allocation default.
func NewRegistryWithDefaults() (*StrategyRegistry, error) {
	r := NewStrategyRegistry()

	fifo := allocation.NewFIFOFeeFirstStrategy()
	if err := r.RegisterWaterfallStrategy(fifo); err != nil {
		return nil, err
	}
	if err := r.SetDefault(strategy.StrategyTypeAllocation, fifo.Name()); err != nil {
		return nil, err
	}

	return r, nil
}
