package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// ContextKey is the type of request-scoped context keys.
type ContextKey string

// Context keys for request-scoped values.
const (
	// PrincipalContextKey holds the authenticated auth.Principal.
	PrincipalContextKey ContextKey = "principal"

	// TokenContextKey holds the raw bearer token of the request.
	TokenContextKey ContextKey = "token"

	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16
)

// TraceIDHeader carries the trace ID on requests and responses.
const TraceIDHeader = "X-Trace-ID"

// SetTraceID adds a new trace ID to ctx.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID adds the given trace ID to ctx.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// ValidTraceID reports whether id looks like a trace ID this package would
// generate: 32 lowercase hex characters.
func ValidTraceID(id string) bool {
	if len(id) != TraceIDLength*2 || strings.ToLower(id) != id {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		return strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return hex.EncodeToString(b)
}

// WithPrincipal stores the authenticated principal and its token in ctx.
func WithPrincipal(ctx context.Context, p auth.Principal, token string) context.Context {
	ctx = context.WithValue(ctx, PrincipalContextKey, p)
	return context.WithValue(ctx, TokenContextKey, token)
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (auth.Principal, bool) {
	p, ok := ctx.Value(PrincipalContextKey).(auth.Principal)
	if !ok || p.ID == "" {
		return auth.Principal{}, false
	}
	return p, true
}

// TokenFrom returns the bearer token the request was authenticated with.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(TokenContextKey).(string)
	return token
}
