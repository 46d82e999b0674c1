package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	return r
}

func withPrincipal(r *http.Request, p auth.Principal) *http.Request {
	return r.WithContext(shared.WithPrincipal(r.Context(), p, "tok-"+p.ID))
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	return v
}

// stubUserService implements service.UserService with functions.
type stubUserService struct {
	createFn func(ctx context.Context, cmd service.CreateUserCommand) (domain.User, error)
	getFn    func(ctx context.Context, id domain.UserID) (domain.User, error)
}

var _ service.UserService = (*stubUserService)(nil)

func (s *stubUserService) CreateUser(ctx context.Context, cmd service.CreateUserCommand) (domain.User, error) {
	return s.createFn(ctx, cmd)
}

func (s *stubUserService) GetUser(ctx context.Context, id domain.UserID) (domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) DeleteUser(context.Context, domain.UserID) error {
	return nil
}
