package health

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrProbeTimeout is returned when a probe does not connect in time.
	ErrProbeTimeout = errors.New("probe timed out")

	// ErrProbeConnection is returned when a probe's connection attempt fails.
	ErrProbeConnection = errors.New("probe connection failed")

	// ErrUnavailable is wrapped by every UnavailableError.
	ErrUnavailable = errors.New("service unavailable")
)

// ProbeError describes a failed reachability probe.
type ProbeError struct {
	Label string
	Addr  string
	// Kind is ErrProbeTimeout or ErrProbeConnection.
	Kind error
	Err  error
}

// Error implements the error interface.
func (e *ProbeError) Error() string {
	label := e.Label
	if label == "" {
		label = e.Addr
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v (%s)", label, e.Kind, e.Addr)
	}
	return fmt.Sprintf("%s: %v (%s): %v", label, e.Kind, e.Addr, e.Err)
}

// Unwrap exposes both the kind sentinel and the underlying dial error.
func (e *ProbeError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// UnavailableError reports every dependency that failed one aggregate check.
type UnavailableError struct {
	// Dependencies are listed in registry order.
	Dependencies []string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	return "Unhealthy dependencies: " + strings.Join(e.Dependencies, ", ")
}

// Unwrap returns ErrUnavailable.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}
