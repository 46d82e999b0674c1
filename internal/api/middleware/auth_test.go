package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/mocks"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

var alice = auth.Principal{ID: "u-1", Email: "alice@example.com", Roles: []string{auth.RoleUser}}

func principalEcho(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := shared.PrincipalFrom(r.Context())
		require.True(t, ok)
		assert.Equal(t, "good-token", shared.TokenFrom(r.Context()))
		shared.RespondWithJSON(w, r, http.StatusOK, p)
	})
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	t.Parallel()

	strategy := &mocks.MockAuthStrategy{
		ValidateTokenFn: func(_ context.Context, token string) (auth.Principal, error) {
			switch token {
			case "good-token":
				return alice, nil
			case "expired":
				return auth.Principal{}, auth.ErrExpiredToken
			case "revoked":
				return auth.Principal{}, auth.ErrRevokedToken
			case "broken":
				return auth.Principal{}, errors.New("redis: connection refused")
			default:
				return auth.Principal{}, auth.ErrInvalidToken
			}
		},
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "valid token", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "lowercase scheme", header: "bearer good-token", wantStatus: http.StatusOK},
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "Authorization header required"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "Invalid authorization format"},
		{name: "no token", header: "Bearer", wantStatus: http.StatusUnauthorized, wantError: "Invalid authorization format"},
		{name: "extra parts", header: "Bearer a b", wantStatus: http.StatusUnauthorized, wantError: "Invalid authorization format"},
		{name: "expired", header: "Bearer expired", wantStatus: http.StatusUnauthorized, wantError: "Token expired"},
		{name: "revoked", header: "Bearer revoked", wantStatus: http.StatusUnauthorized, wantError: "Token revoked"},
		{name: "invalid", header: "Bearer junk", wantStatus: http.StatusUnauthorized, wantError: "Invalid token"},
		{name: "backend failure", header: "Bearer broken", wantStatus: http.StatusInternalServerError, wantError: "Authentication error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h := NewAuthMiddleware(strategy).Authenticate(principalEcho(t))
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantError == "" {
				var got auth.Principal
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
				assert.Equal(t, alice, got)
				return
			}
			var body shared.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tc.wantError, body.Error)
			assert.NotContains(t, w.Body.String(), "redis")
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole(auth.RoleAdmin)(ok)

	tests := []struct {
		name       string
		principal  *auth.Principal
		wantStatus int
	}{
		{name: "anonymous", wantStatus: http.StatusUnauthorized},
		{name: "plain user", principal: &alice, wantStatus: http.StatusForbidden},
		{name: "admin", principal: &auth.Principal{ID: "a", Roles: []string{auth.RoleAdmin, auth.RoleUser}}, wantStatus: http.StatusNoContent},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.principal != nil {
				r = r.WithContext(shared.WithPrincipal(r.Context(), *tc.principal, "tok"))
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}
