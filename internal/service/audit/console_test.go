package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukp-platform/ukp-api/internal/domain"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestFormatEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event domain.AuditEvent
		want  string
	}{
		{
			name:  "minimal",
			event: domain.AuditEvent{Result: domain.AuditSuccess, Action: "auth.login", Resource: "session"},
			want:  "[SUCCESS] | Action: auth.login | Resource: session",
		},
		{
			name: "all fields",
			event: domain.AuditEvent{
				Result:       domain.AuditFailure,
				Action:       "user.create",
				Resource:     "user",
				ResourceID:   "r-1",
				UserID:       "u-1",
				ErrorMessage: "email exists",
				Metadata:     map[string]any{"email": "a@example.com"},
			},
			want: `[FAILURE] | Action: user.create | Resource: user | ID: r-1 | User: u-1 | Error: email exists | Metadata: {"email":"a@example.com"}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, FormatEvent(tc.event))
		})
	}
}

func TestConsoleStrategy_LogLevels(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	s := NewConsoleStrategy(newBufferLogger(&buf))
	assert.Equal(t, ProviderConsole, s.Name())

	require.NoError(t, s.Log(ctx, domain.AuditEvent{Result: domain.AuditSuccess, Action: "a", Resource: "r"}))
	require.NoError(t, s.Log(ctx, domain.AuditEvent{Result: domain.AuditFailure, Action: "b", Resource: "r"}))

	dec := json.NewDecoder(&buf)
	var first, second map[string]any
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))

	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "[SUCCESS] | Action: a | Resource: r", first["msg"])
	assert.Equal(t, "audit_trail", first["component"])
	assert.Equal(t, "ERROR", second["level"])
}

func TestConsoleStrategy_QueryAndPurge(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var buf bytes.Buffer
	s := NewConsoleStrategy(newBufferLogger(&buf))

	events, err := s.Query(ctx, domain.AuditQuery{UserID: "u"})
	require.NoError(t, err)
	assert.NotNil(t, events)
	assert.Empty(t, events)

	n, err := s.Purge(ctx, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Contains(t, buf.String(), `"level":"WARN"`)
	assert.Contains(t, buf.String(), "purge attempted")
}
