package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
)

// ConsoleStrategy writes events to the structured log. It cannot query or
// purge.
type ConsoleStrategy struct {
	logger *slog.Logger
}

var _ Strategy = (*ConsoleStrategy)(nil)

// NewConsoleStrategy creates a ConsoleStrategy.
func NewConsoleStrategy(logger *slog.Logger) *ConsoleStrategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleStrategy{logger: logger.With(slog.String("component", "audit_trail"))}
}

// Name implements Strategy.
func (s *ConsoleStrategy) Name() Provider {
	return ProviderConsole
}

// Log implements Strategy. Failures are logged at error level.
func (s *ConsoleStrategy) Log(ctx context.Context, event domain.AuditEvent) error {
	msg := FormatEvent(event)
	if event.Result == domain.AuditFailure {
		s.logger.ErrorContext(ctx, msg)
	} else {
		s.logger.InfoContext(ctx, msg)
	}
	return nil
}

// Query implements Strategy. It always returns no events.
func (s *ConsoleStrategy) Query(ctx context.Context, q domain.AuditQuery) ([]domain.AuditEvent, error) {
	s.logger.WarnContext(ctx, "query attempted on console audit strategy",
		slog.String("user_id", q.UserID),
		slog.String("action", q.Action),
		slog.String("resource", q.Resource))
	return []domain.AuditEvent{}, nil
}

// Purge implements Strategy. It never removes anything.
func (s *ConsoleStrategy) Purge(ctx context.Context, before time.Time) (int64, error) {
	s.logger.WarnContext(ctx, "purge attempted on console audit strategy",
		slog.Time("before", before))
	return 0, nil
}

// FormatEvent renders event as a single line:
//
//	[SUCCESS] | Action: auth.login | Resource: session | User: 42
func FormatEvent(event domain.AuditEvent) string {
	parts := []string{
		fmt.Sprintf("[%s]", strings.ToUpper(string(event.Result))),
		"Action: " + event.Action,
		"Resource: " + event.Resource,
	}
	if event.ResourceID != "" {
		parts = append(parts, "ID: "+event.ResourceID)
	}
	if event.UserID != "" {
		parts = append(parts, "User: "+event.UserID)
	}
	if event.ErrorMessage != "" {
		parts = append(parts, "Error: "+event.ErrorMessage)
	}
	if len(event.Metadata) > 0 {
		if b, err := json.Marshal(event.Metadata); err == nil {
			parts = append(parts, "Metadata: "+string(b))
		}
	}
	return strings.Join(parts, " | ")
}
