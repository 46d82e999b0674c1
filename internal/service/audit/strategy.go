// Package audit records security-relevant events through pluggable
// strategies: a console strategy that writes to the structured log and a
// database strategy backed by the audit_logs table.
package audit

import (
	"context"
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
)

// Provider names an audit trail backend.
type Provider string

// Known providers. Elasticsearch and file are reserved names without an
// implementation.
const (
	ProviderConsole       Provider = "console"
	ProviderDatabase      Provider = "database"
	ProviderElasticsearch Provider = "elasticsearch"
	ProviderFile          Provider = "file"
)

// Common actions recorded by the application.
const (
	ActionLogin      = "auth.login"
	ActionLogout     = "auth.logout"
	ActionUserCreate = "user.create"
)

// Strategy stores and retrieves audit events.
type Strategy interface {
	Name() Provider
	Log(ctx context.Context, event domain.AuditEvent) error
	Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEvent, error)
	// Purge deletes events recorded before the given time and returns how
	// many were removed.
	Purge(ctx context.Context, before time.Time) (int64, error)
}

// Recorder accepts audit events without reporting failures to the caller.
type Recorder interface {
	Record(ctx context.Context, event domain.AuditEvent)
}
