package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
)

// ErrStrategyNotFound is returned for an unregistered provider.
var ErrStrategyNotFound = errors.New("audit strategy not found")

// Resolver holds the registered strategies and the active one.
type Resolver struct {
	mu         sync.RWMutex
	strategies map[Provider]Strategy
	order      []Provider
	active     Strategy
	logger     *slog.Logger
}

var _ Recorder = (*Resolver)(nil)

// NewResolver registers strategies. The database strategy is active in
// production when registered; the console strategy is active otherwise.
func NewResolver(production bool, logger *slog.Logger, strategies ...Strategy) (*Resolver, error) {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Resolver{
		strategies: make(map[Provider]Strategy, len(strategies)),
		logger:     logger.With(slog.String("component", "audit_resolver")),
	}
	for _, s := range strategies {
		if s == nil {
			continue
		}
		if _, dup := r.strategies[s.Name()]; !dup {
			r.order = append(r.order, s.Name())
		}
		r.strategies[s.Name()] = s
	}

	selected := ProviderConsole
	if _, ok := r.strategies[ProviderDatabase]; production && ok {
		selected = ProviderDatabase
	}
	active, err := r.Resolve(selected)
	if err != nil {
		return nil, err
	}
	r.active = active
	return r, nil
}

// Resolve returns the strategy for provider.
func (r *Resolver) Resolve(provider Provider) (Strategy, error) {
	s, ok := r.strategies[provider]
	if !ok {
		return nil, fmt.Errorf("%w for provider: %s", ErrStrategyNotFound, provider)
	}
	return s, nil
}

// Active returns the strategy events are recorded with.
func (r *Resolver) Active() Strategy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// SetActive switches the active strategy.
func (r *Resolver) SetActive(provider Provider) error {
	s, err := r.Resolve(provider)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.active = s
	r.mu.Unlock()
	return nil
}

// Providers lists registered providers in registration order.
func (r *Resolver) Providers() []Provider {
	out := make([]Provider, len(r.order))
	copy(out, r.order)
	return out
}

// Record logs event with the active strategy, filling in the timestamp.
// Failures are logged and not returned.
func (r *Resolver) Record(ctx context.Context, event domain.AuditEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	active := r.Active()
	if err := active.Log(ctx, event); err != nil {
		r.logger.ErrorContext(ctx, "failed to record audit event",
			slog.String("provider", string(active.Name())),
			slog.String("action", event.Action),
			slog.String("error", err.Error()))
	}
}
