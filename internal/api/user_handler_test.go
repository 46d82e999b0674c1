package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
	"github.com/ukp-platform/ukp-api/internal/store"
)

func userRouter(svc service.UserService) http.Handler {
	h := NewUserHandler(svc, discardLogger())
	r := chi.NewRouter()
	r.Post("/users", h.CreateUser)
	r.Get("/users/{id}", h.GetUser)
	return r
}

func TestUserHandler_CreateUser(t *testing.T) {
	t.Parallel()

	caller := auth.Principal{ID: "11111111-1111-1111-1111-111111111111", Roles: []string{auth.RoleAdmin, auth.RoleUser}}
	created, err := domain.NewUser("new@example.com", "New")
	require.NoError(t, err)

	tests := []struct {
		name       string
		body       string
		principal  *auth.Principal
		createErr  error
		wantStatus int
		wantError  string
	}{
		{name: "created", body: `{"email":"new@example.com","displayName":"New"}`, principal: &caller, wantStatus: http.StatusCreated},
		{name: "anonymous", body: `{"email":"new@example.com","displayName":"New"}`, wantStatus: http.StatusUnauthorized, wantError: "Authentication required"},
		{name: "malformed json", body: `{"email":`, principal: &caller, wantStatus: http.StatusBadRequest, wantError: "Invalid request format"},
		{name: "validation", body: `{"email":"nope","displayName":""}`, principal: &caller, wantStatus: http.StatusBadRequest, wantError: "Validation error"},
		{name: "short password", body: `{"email":"a@example.com","displayName":"A","password":"short"}`, principal: &caller, wantStatus: http.StatusBadRequest, wantError: "Validation error"},
		{name: "email exists", body: `{"email":"new@example.com","displayName":"New"}`, principal: &caller, createErr: store.ErrEmailExists, wantStatus: http.StatusConflict, wantError: "Email already exists"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var got service.CreateUserCommand
			svc := &stubUserService{createFn: func(_ context.Context, cmd service.CreateUserCommand) (domain.User, error) {
				got = cmd
				if tc.createErr != nil {
					return domain.User{}, tc.createErr
				}
				return created, nil
			}}

			r := jsonRequest(t, http.MethodPost, "/users", tc.body)
			if tc.principal != nil {
				r = withPrincipal(r, *tc.principal)
			}
			w := httptest.NewRecorder()
			userRouter(svc).ServeHTTP(w, r)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decodeBody[shared.ErrorResponse](t, w).Error)
				return
			}
			resp := decodeBody[UserResponse](t, w)
			assert.Equal(t, created.ID.String(), resp.ID)
			assert.Equal(t, "invited", resp.Status)
			assert.Equal(t, caller.ID, got.ActorID)
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}

func TestUserHandler_GetUser(t *testing.T) {
	t.Parallel()

	u, err := domain.NewUser("self@example.com", "Self")
	require.NoError(t, err)
	self := auth.Principal{ID: u.ID.String(), Roles: []string{auth.RoleUser}}
	admin := auth.Principal{ID: domain.NewUserID().String(), Roles: []string{auth.RoleAdmin, auth.RoleUser}}
	stranger := auth.Principal{ID: domain.NewUserID().String(), Roles: []string{auth.RoleUser}}
	missing := domain.NewUserID()

	svc := &stubUserService{getFn: func(_ context.Context, id domain.UserID) (domain.User, error) {
		if id == u.ID {
			return u, nil
		}
		return domain.User{}, store.ErrUserNotFound
	}}

	tests := []struct {
		name       string
		path       string
		principal  auth.Principal
		wantStatus int
	}{
		{name: "self", path: "/users/" + u.ID.String(), principal: self, wantStatus: http.StatusOK},
		{name: "admin", path: "/users/" + u.ID.String(), principal: admin, wantStatus: http.StatusOK},
		{name: "other user", path: "/users/" + u.ID.String(), principal: stranger, wantStatus: http.StatusForbidden},
		{name: "invalid id", path: "/users/not-an-id", principal: admin, wantStatus: http.StatusBadRequest},
		{name: "not found", path: "/users/" + missing.String(), principal: admin, wantStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			w := httptest.NewRecorder()
			userRouter(svc).ServeHTTP(w, withPrincipal(jsonRequest(t, http.MethodGet, tc.path, ""), tc.principal))
			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, u.Email, decodeBody[UserResponse](t, w).Email)
			}
		})
	}
}
