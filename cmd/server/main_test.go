package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	opts, err := parseFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{envDir: "."}, opts)

	opts, err = parseFlags([]string{"--env-dir", "/etc/ukp", "--migrate-only"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, options{envDir: "/etc/ukp", migrate: true, migrateOnly: true}, opts)

	_, err = parseFlags([]string{"--bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestRun_InvalidConfigExitsWithViolations(t *testing.T) {
	t.Setenv("NODE_ENV", "testing")
	t.Setenv("PORT", "70000")
	t.Setenv("JWT_SECRET", "short")

	var stderr bytes.Buffer
	code := run(context.Background(), []string{"--env-dir", t.TempDir()}, &stderr)

	assert.Equal(t, 1, code)
	out := stderr.String()
	assert.Contains(t, out, "invalid configuration:")
	assert.Contains(t, out, "PORT")
	assert.Contains(t, out, "JWT_SECRET")
	assert.NotContains(t, out, "short", "secret values are never printed")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 2, run(context.Background(), []string{"--nope"}, io.Discard))
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()

	app := &application{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, ln, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestApplicationCleanup(t *testing.T) {
	t.Parallel()

	var order []int
	app := &application{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		closers: []func() error{
			func() error { order = append(order, 1); return nil },
			func() error { order = append(order, 2); return nil },
		},
	}
	app.cleanup()
	assert.Equal(t, []int{2, 1}, order)
	assert.Empty(t, app.closers)
}
