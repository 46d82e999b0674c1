package health_test

import (
	"context"
	"errors"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukp-platform/ukp-api/internal/health"
)

// listen starts a loopback listener that accepts and discards connections.
func listen(t *testing.T) (string, int) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)
	return host, port
}

// closedPort returns a loopback port with nothing listening on it.
func closedPort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return port
}

func TestTCPProber_Succeeds(t *testing.T) {
	host, port := listen(t)

	err := health.NewTCPProber().Probe(context.Background(), health.ProbeOptions{
		Host:    host,
		Port:    port,
		Timeout: time.Second,
		Label:   "database",
	})

	assert.NoError(t, err)
}

func TestTCPProber_RepeatedProbes(t *testing.T) {
	host, port := listen(t)
	prober := health.NewTCPProber()

	for i := 0; i < 50; i++ {
		require.NoError(t, prober.Probe(context.Background(), health.ProbeOptions{Host: host, Port: port}))
	}
}

func TestTCPProber_ConnectionRefused(t *testing.T) {
	port := closedPort(t)

	err := health.NewTCPProber().Probe(context.Background(), health.ProbeOptions{
		Host:    "127.0.0.1",
		Port:    port,
		Timeout: time.Second,
		Label:   "redis",
	})

	require.Error(t, err)
	var probeErr *health.ProbeError
	require.ErrorAs(t, err, &probeErr)
	assert.Equal(t, "redis", probeErr.Label)
	assert.True(t, errors.Is(err, health.ErrProbeConnection))
	assert.Contains(t, err.Error(), "redis")
}

func TestTCPProber_Timeout(t *testing.T) {
	// 192.0.2.0/24 is reserved for documentation and is not routed.
	start := time.Now()
	err := health.NewTCPProber().Probe(context.Background(), health.ProbeOptions{
		Host:    "192.0.2.1",
		Port:    81,
		Timeout: 50 * time.Millisecond,
		Label:   "database",
	})

	require.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
	// Some sandboxes reject unroutable addresses immediately.
	assert.True(t, errors.Is(err, health.ErrProbeTimeout) || errors.Is(err, health.ErrProbeConnection))
}

func TestTCPProber_CancelledContext(t *testing.T) {
	host, port := listen(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := health.NewTCPProber().Probe(ctx, health.ProbeOptions{Host: host, Port: port})

	assert.Error(t, err)
}

func TestProbeFunc(t *testing.T) {
	var got health.ProbeOptions
	p := health.ProbeFunc(func(_ context.Context, opts health.ProbeOptions) error {
		got = opts
		return nil
	})

	require.NoError(t, p.Probe(context.Background(), health.ProbeOptions{Host: "h", Port: 1, Label: "x"}))
	assert.Equal(t, "h", got.Host)
}
