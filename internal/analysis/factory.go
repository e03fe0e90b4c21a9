// Salesreport - Sales Analytics Reporting
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/salesreport

package analysis

import "sync"

// Factory creates strategies by key.
type Factory struct {
	mu           sync.RWMutex
	order        []string
	constructors map[string]func() Strategy
}

// NewFactory returns a factory with the four built-in strategies.
func NewFactory() *Factory {
	f := &Factory{constructors: make(map[string]func() Strategy)}
	f.Register(Revenue.String(), func() Strategy { return RevenueStrategy{} })
	f.Register(Quantity.String(), func() Strategy { return QuantityStrategy{} })
	f.Register(CustomerBehavior.String(), func() Strategy { return CustomerBehaviorStrategy{} })
	f.Register(ProductPerformance.String(), func() Strategy { return ProductPerformanceStrategy{} })
	return f
}

var (
	defaultFactory     *Factory
	defaultFactoryOnce sync.Once
)

// DefaultFactory returns the shared factory with the built-in strategies.
func DefaultFactory() *Factory {
	defaultFactoryOnce.Do(func() {
		defaultFactory = NewFactory()
	})
	return defaultFactory
}

// Register adds or replaces the constructor for key. New keys are appended
// to AvailableStrategies.
func (f *Factory) Register(key string, constructor func() Strategy) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.constructors[key]; !exists {
		f.order = append(f.order, key)
	}
	f.constructors[key] = constructor
}

// CreateStrategy returns a new strategy for key.
func (f *Factory) CreateStrategy(key string) (Strategy, error) {
	f.mu.RLock()
	constructor, ok := f.constructors[key]
	f.mu.RUnlock()
	if !ok {
		return nil, &UnsupportedStrategyError{Key: key}
	}
	return constructor(), nil
}

// CreateStrategies resolves every key, failing on the first unknown one.
func (f *Factory) CreateStrategies(keys ...string) ([]Strategy, error) {
	out := make([]Strategy, 0, len(keys))
	for _, k := range keys {
		s, err := f.CreateStrategy(k)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// AvailableStrategies returns the registered keys in registration order.
func (f *Factory) AvailableStrategies() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.order))
	copy(out, f.order)
	return out
}
