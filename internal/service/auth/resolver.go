package auth

import (
	"fmt"
	"sort"
)

// Resolver selects an authentication strategy by provider.
type Resolver struct {
	strategies map[Provider]Strategy
	fallback   Provider
}

// NewResolver registers strategies by their Name. The local strategy is the
// default when registered, otherwise the first one given.
func NewResolver(strategies ...Strategy) *Resolver {
	r := &Resolver{strategies: make(map[Provider]Strategy, len(strategies))}
	for _, s := range strategies {
		if s == nil {
			continue
		}
		if r.fallback == "" {
			r.fallback = s.Name()
		}
		r.strategies[s.Name()] = s
	}
	if _, ok := r.strategies[ProviderLocal]; ok {
		r.fallback = ProviderLocal
	}
	return r
}

// Resolve returns the strategy for provider.
func (r *Resolver) Resolve(provider Provider) (Strategy, error) {
	s, ok := r.strategies[provider]
	if !ok {
		return nil, fmt.Errorf("%w for provider: %s", ErrStrategyNotFound, provider)
	}
	return s, nil
}

// Default returns the default strategy.
func (r *Resolver) Default() (Strategy, error) {
	return r.Resolve(r.fallback)
}

// Providers lists registered providers in sorted order.
func (r *Resolver) Providers() []Provider {
	out := make([]Provider, 0, len(r.strategies))
	for p := range r.strategies {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
