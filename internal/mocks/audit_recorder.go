package mocks

import (
	"context"
	"sync"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service/audit"
)

// AuditRecorder collects recorded events.
type AuditRecorder struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// Record implements audit.Recorder.
func (r *AuditRecorder) Record(_ context.Context, event domain.AuditEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *AuditRecorder) Events() []domain.AuditEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditEvent, len(r.events))
	copy(out, r.events)
	return out
}
