package store

import (
	"context"
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
)

// AuditStore persists audit events.
type AuditStore interface {
	// Insert stores event, assigning an ID when it has none, and returns the
	// stored event.
	Insert(ctx context.Context, event domain.AuditEvent) (domain.AuditEvent, error)

	// Query returns matching events, newest first.
	Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEvent, error)

	// DeleteBefore removes events older than before and returns how many.
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}
