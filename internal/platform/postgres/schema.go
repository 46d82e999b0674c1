package postgres

import (
	"context"
	"fmt"

	"github.com/ukp-platform/ukp-api/internal/health"
)

// Pinger is implemented by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// PendingChecker reports whether migrations remain to be applied. It is
// implemented by *goose.Provider.
type PendingChecker interface {
	HasPending(ctx context.Context) (bool, error)
}

// SchemaChecker reports datastore connectivity and migration status to the
// health service.
type SchemaChecker struct {
	db      Pinger
	pending PendingChecker
}

var _ health.DatabaseChecker = (*SchemaChecker)(nil)

// NewSchemaChecker creates a SchemaChecker.
func NewSchemaChecker(db Pinger, pending PendingChecker) *SchemaChecker {
	return &SchemaChecker{db: db, pending: pending}
}

// CheckDatabase pings the datastore, then asks whether any migration is
// pending. A failed ping skips the migration check.
func (c *SchemaChecker) CheckDatabase(ctx context.Context) (health.DatabaseStatus, error) {
	var status health.DatabaseStatus

	if err := c.db.PingContext(ctx); err != nil {
		return status, fmt.Errorf("database ping failed: %w", err)
	}
	status.Connected = true

	pending, err := c.pending.HasPending(ctx)
	if err != nil {
		return status, fmt.Errorf("failed to read migration status: %w", err)
	}
	status.SchemaUpToDate = !pending

	return status, nil
}
