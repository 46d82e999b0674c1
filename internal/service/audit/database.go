package audit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/store"
)

// DatabaseStrategy persists events through a store.AuditStore.
type DatabaseStrategy struct {
	store  store.AuditStore
	logger *slog.Logger
}

var _ Strategy = (*DatabaseStrategy)(nil)

// NewDatabaseStrategy creates a DatabaseStrategy.
func NewDatabaseStrategy(s store.AuditStore, logger *slog.Logger) (*DatabaseStrategy, error) {
	if s == nil {
		return nil, errors.New("audit store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DatabaseStrategy{
		store:  s,
		logger: logger.With(slog.String("component", "audit_database")),
	}, nil
}

// Name implements Strategy.
func (s *DatabaseStrategy) Name() Provider {
	return ProviderDatabase
}

// Log implements Strategy.
func (s *DatabaseStrategy) Log(ctx context.Context, event domain.AuditEvent) error {
	if !event.Result.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAuditResult, event.Result)
	}
	if _, err := s.store.Insert(ctx, event); err != nil {
		return fmt.Errorf("failed to persist audit event: %w", err)
	}
	return nil
}

// Query implements Strategy.
func (s *DatabaseStrategy) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEvent, error) {
	events, err := s.store.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query audit events: %w", err)
	}
	return events, nil
}

// Purge implements Strategy.
func (s *DatabaseStrategy) Purge(ctx context.Context, before time.Time) (int64, error) {
	n, err := s.store.DeleteBefore(ctx, before)
	if err != nil {
		return 0, fmt.Errorf("failed to purge audit events: %w", err)
	}
	s.logger.InfoContext(ctx, "purged audit events",
		slog.Int64("count", n),
		slog.Time("before", before))
	return n, nil
}
