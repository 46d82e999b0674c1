package domain

import "time"

// AuditResult is the outcome recorded by an audit event.
type AuditResult string

// Audit results.
const (
	AuditSuccess AuditResult = "success"
	AuditFailure AuditResult = "failure"
)

// Valid reports whether r is a known result.
func (r AuditResult) Valid() bool {
	return r == AuditSuccess || r == AuditFailure
}

// AuditEvent records one security-relevant action.
type AuditEvent struct {
	// ID is assigned by the store when empty.
	ID           string         `json:"id,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	UserID       string         `json:"userId,omitempty"`
	Action       string         `json:"action"`
	Resource     string         `json:"resource"`
	ResourceID   string         `json:"resourceId,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	Result       AuditResult    `json:"result"`
	ErrorMessage string         `json:"errorMessage,omitempty"`
	IPAddress    string         `json:"ipAddress,omitempty"`
	UserAgent    string         `json:"userAgent,omitempty"`
}

// AuditQuery filters audit events. Zero-valued fields do not filter.
type AuditQuery struct {
	UserID    string
	Action    string
	Resource  string
	StartDate time.Time
	EndDate   time.Time
	Limit     int
	Offset    int
}
