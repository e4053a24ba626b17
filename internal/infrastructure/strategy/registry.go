package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rentdesk/backend/internal/domain/shared"
	"github.com/rentdesk/backend/internal/domain/shared/strategy"
)

// StrategyRegistry manages strategy registrations
type StrategyRegistry struct {
	mu        sync.RWMutex
	waterfall map[string]strategy.WaterfallStrategy
	defaults  map[strategy.StrategyType]string
}

// NewStrategyRegistry creates a new strategy registry
func NewStrategyRegistry() *StrategyRegistry {
	return &StrategyRegistry{
		waterfall: make(map[string]strategy.WaterfallStrategy),
		defaults:  make(map[strategy.StrategyType]string),
	}
}

// RegisterWaterfallStrategy registers a payment waterfall strategy
func (r *StrategyRegistry) RegisterWaterfallStrategy(s strategy.WaterfallStrategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := s.Name()
	if _, exists := r.waterfall[name]; exists {
		return fmt.Errorf("%w: waterfall strategy '%s' already registered", shared.ErrAlreadyExists, name)
	}
	r.waterfall[name] = s
	return nil
}

// GetWaterfallStrategy returns a waterfall strategy by name, or the default if name is empty
func (r *StrategyRegistry) GetWaterfallStrategy(name string) (strategy.WaterfallStrategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if name == "" {
		name = r.defaults[strategy.StrategyTypeAllocation]
		if name == "" {
			return nil, fmt.Errorf("%w: no default waterfall strategy set", shared.ErrNotFound)
		}
	}

	s, exists := r.waterfall[name]
	if !exists {
		return nil, fmt.Errorf("%w: waterfall strategy '%s' not found", shared.ErrNotFound, name)
	}
	return s, nil
}

// ListWaterfallStrategies returns all registered waterfall strategy names
func (r *StrategyRegistry) ListWaterfallStrategies() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.waterfall))
	for name := range r.waterfall {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// UnregisterWaterfallStrategy removes a waterfall strategy
func (r *StrategyRegistry) UnregisterWaterfallStrategy(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.waterfall[name]; !exists {
		return fmt.Errorf("%w: waterfall strategy '%s' not found", shared.ErrNotFound, name)
	}
	delete(r.waterfall, name)

	if r.defaults[strategy.StrategyTypeAllocation] == name {
		delete(r.defaults, strategy.StrategyTypeAllocation)
	}
	return nil
}

// SetDefault sets the default strategy for a type. The strategy must be registered.
func (r *StrategyRegistry) SetDefault(strategyType strategy.StrategyType, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !strategyType.IsValid() {
		return fmt.Errorf("%w: invalid strategy type '%s'", shared.ErrInvalidInput, strategyType)
	}
	if _, exists := r.waterfall[name]; !exists {
		return fmt.Errorf("%w: %s strategy '%s' not found", shared.ErrNotFound, strategyType, name)
	}
	r.defaults[strategyType] = name
	return nil
}

// GetDefault returns the default strategy name for a type
func (r *StrategyRegistry) GetDefault(strategyType strategy.StrategyType) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults[strategyType]
}
