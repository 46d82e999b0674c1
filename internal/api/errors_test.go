package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/health"
	"github.com/ukp-platform/ukp-api/internal/service"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
	"github.com/ukp-platform/ukp-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("wrapped: %w", auth.ErrExpiredToken), http.StatusUnauthorized},
		{auth.ErrRevokedToken, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{service.ErrForbidden, http.StatusForbidden},
		{store.ErrUserNotFound, http.StatusNotFound},
		{store.ErrEmailExists, http.StatusConflict},
		{domain.ErrInvalidUserID, http.StatusBadRequest},
		{domain.ErrEmptyDisplayName, http.StatusBadRequest},
		{&health.UnavailableError{Dependencies: []string{"redis"}}, http.StatusServiceUnavailable},
		{errors.New("anything else"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), tc.err.Error())
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Invalid credentials", GetSafeErrorMessage(auth.ErrInvalidCredentials))
	assert.Equal(t, "User not found", GetSafeErrorMessage(fmt.Errorf("get: %w", store.ErrUserNotFound)))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "Unhealthy dependencies: database, redis",
		GetSafeErrorMessage(&health.UnavailableError{Dependencies: []string{"database", "redis"}}))

	leaky := errors.New("pq: relation users at postgres://u:p@db/x")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}
