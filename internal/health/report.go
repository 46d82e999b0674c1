package health

import "fmt"

// Status is the health verdict of a dependency or of the whole service.
type Status int

const (
	// StatusHealthy indicates every check passed.
	StatusHealthy Status = iota
	// StatusDegraded is reserved for partial degradation. No check
	// produces it yet.
	StatusDegraded
	// StatusUnhealthy indicates at least one check failed.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its string form.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status from its string form.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "healthy":
		*s = StatusHealthy
	case "degraded":
		*s = StatusDegraded
	case "unhealthy":
		*s = StatusUnhealthy
	default:
		return fmt.Errorf("unknown health status %q", text)
	}
	return nil
}

// DependencyReport is the outcome of one dependency probe.
type DependencyReport struct {
	Status Status `json:"status"`
	// LatencyMS is the time from dispatch to settle in milliseconds.
	LatencyMS *int64 `json:"latency,omitempty"`
	Error     string `json:"error,omitempty"`
}

// DatabaseReport is the datastore sub-report of a detailed check.
type DatabaseReport struct {
	Connected      bool   `json:"connected"`
	SchemaUpToDate bool   `json:"migrationsApplied"`
	LatencyMS      *int64 `json:"latency,omitempty"`
	Error          string `json:"error,omitempty"`
}

// Report is the result of a detailed health check.
type Report struct {
	Status       Status                      `json:"status"`
	Dependencies map[string]DependencyReport `json:"dependencies"`
	Database     DatabaseReport              `json:"database"`
}

// Healthy reports whether the overall status is healthy.
func (r Report) Healthy() bool {
	return r.Status == StatusHealthy
}
