package health

import (
	"context"
	"errors"
	"net"
	"time"
)

// DefaultProbeTimeout bounds a probe whose options carry no positive timeout.
const DefaultProbeTimeout = time.Second

// ProbeOptions describes one reachability probe.
type ProbeOptions struct {
	Host    string
	Port    int
	Timeout time.Duration
	// Label names the dependency in errors.
	Label string
}

// Prober checks whether a dependency accepts connections.
type Prober interface {
	Probe(ctx context.Context, opts ProbeOptions) error
}

// ProbeFunc adapts a function to the Prober interface.
type ProbeFunc func(ctx context.Context, opts ProbeOptions) error

// Probe calls f.
func (f ProbeFunc) Probe(ctx context.Context, opts ProbeOptions) error {
	return f(ctx, opts)
}

// TCPProber opens a TCP connection to the target and closes it immediately.
type TCPProber struct {
	dialer net.Dialer
}

var _ Prober = (*TCPProber)(nil)

// NewTCPProber creates a TCPProber.
func NewTCPProber() *TCPProber {
	return &TCPProber{}
}

// Probe succeeds as soon as a connection is established. It returns a
// *ProbeError when the attempt is refused or does not finish within
// opts.Timeout.
func (p *TCPProber) Probe(ctx context.Context, opts ProbeOptions) error {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	target := Target{Host: opts.Host, Port: opts.Port}
	conn, err := p.dialer.DialContext(ctx, "tcp", target.Addr())
	if err != nil {
		kind := ErrProbeConnection
		if errors.Is(ctx.Err(), context.DeadlineExceeded) || isTimeout(err) {
			kind = ErrProbeTimeout
			err = nil
		}
		return &ProbeError{Label: opts.Label, Addr: target.Addr(), Kind: kind, Err: err}
	}

	return conn.Close()
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
