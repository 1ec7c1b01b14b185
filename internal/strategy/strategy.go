// Package strategy implements the position engines: rule-based functions
// that turn a daily close-price series into a daily exposure series.
//
// Every engine follows the same discipline: pre-compute rolling quantities
// over the whole series, run a single forward walk updating local state, and
// shift the resulting exposure series forward by one day so the position held
// on day t only ever depends on closes up to day t-1.
package strategy

import "sort"

// Strategy computes a daily exposure series from a close-price series. The
// returned slice has the same length as close; each value is the fraction of
// capital deployed that day (0, 1, or a leverage multiple).
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Positions runs the engine over the full close series and returns the
	// lagged exposure series.
	Positions(close []float64) ([]float64, error)
}

// Registry holds a named collection of strategies for lookup and enumeration.
type Registry struct {
	strategies map[string]Strategy
}

// NewRegistry creates an empty strategy Registry.
func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

// Register adds a strategy to the registry, keyed by its Name().
func (r *Registry) Register(s Strategy) {
	r.strategies[s.Name()] = s
}

// Get retrieves a strategy by name. The second return value indicates whether
// the strategy was found.
func (r *Registry) Get(name string) (Strategy, bool) {
	s, ok := r.strategies[name]
	return s, ok
}

// List returns a sorted slice of all registered strategy names.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
