package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStrategy_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewLocalStrategy(nil, LocalOptions{Signer: newTestSigner(t)}, nil)
	assert.Error(t, err)

	_, err = NewLocalStrategy(newMemUserStore(), LocalOptions{}, nil)
	assert.Error(t, err)
}

func TestLocalStrategy_Authenticate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := activeUser(t, "alice@example.com", "correct horse")
	noPassword := activeUser(t, "nopass@example.com", "x").WithPasswordHash("")

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "alice@example.com", password: "correct horse"},
		{name: "surrounding whitespace in email", email: "  alice@example.com ", password: "correct horse"},
		{name: "wrong password", email: "alice@example.com", password: "wrong", wantErr: ErrInvalidCredentials},
		{name: "unknown email", email: "bob@example.com", password: "correct horse", wantErr: ErrInvalidCredentials},
		{name: "user without password", email: "nopass@example.com", password: "x", wantErr: ErrInvalidCredentials},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := newTestStrategy(t, newMemUserStore(alice, noPassword), false)

			p, err := s.Authenticate(ctx, Credentials{Email: tc.email, Password: tc.password})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, "Invalid credentials", err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, alice.ID.String(), p.ID)
			assert.Equal(t, alice.Email, p.Email)
			assert.Equal(t, []string{RoleUser}, p.Roles)
		})
	}
}

func TestLocalStrategy_Authenticate_StoreFailure(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	users.findErr = errors.New("connection reset")
	s := newTestStrategy(t, users, false)

	_, err := s.Authenticate(context.Background(), Credentials{Email: "a@example.com", Password: "p"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalStrategy_AdminBootstrap(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	users := newMemUserStore()
	s := newTestStrategy(t, users, true)

	p, err := s.Authenticate(ctx, Credentials{Email: AdminEmail, Password: adminBootstrapPassword})
	require.NoError(t, err)
	assert.Equal(t, AdminEmail, p.Email)
	assert.Equal(t, AdminDisplayName, p.DisplayName)
	assert.Equal(t, []string{RoleAdmin, RoleUser}, p.Roles)
	assert.True(t, p.HasRole(RoleAdmin))
	assert.Equal(t, 1, users.saves)

	// Second login goes through the normal password check.
	p2, err := s.Authenticate(ctx, Credentials{Email: AdminEmail, Password: adminBootstrapPassword})
	require.NoError(t, err)
	assert.Equal(t, p.ID, p2.ID)
	assert.Equal(t, 1, users.saves)

	_, err = s.Authenticate(ctx, Credentials{Email: AdminEmail, Password: "not-the-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLocalStrategy_AdminBootstrapDisabled(t *testing.T) {
	t.Parallel()

	users := newMemUserStore()
	s := newTestStrategy(t, users, false)

	_, err := s.Authenticate(context.Background(), Credentials{Email: AdminEmail, Password: adminBootstrapPassword})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Zero(t, users.saves)
}

func TestLocalStrategy_TokenLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	alice := activeUser(t, "alice@example.com", "pw")
	s := newTestStrategy(t, newMemUserStore(alice), false)

	p, err := s.Authenticate(ctx, Credentials{Email: alice.Email, Password: "pw"})
	require.NoError(t, err)

	tok, err := s.GenerateTokens(ctx, p)
	require.NoError(t, err)
	assert.NotEmpty(t, tok.AccessToken)
	assert.Empty(t, tok.RefreshToken)
	assert.Equal(t, 3600, tok.ExpiresIn)

	got, err := s.ValidateToken(ctx, tok.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	require.NoError(t, s.RevokeToken(ctx, tok.AccessToken))

	_, err = s.ValidateToken(ctx, tok.AccessToken)
	assert.ErrorIs(t, err, ErrRevokedToken)
}

func TestLocalStrategy_ValidateToken_Rejects(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStrategy(t, newMemUserStore(), false)

	_, err := s.ValidateToken(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = s.ValidateToken(ctx, "not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenSigner("another-secret-that-is-at-least-32-chars", 0)
	require.NoError(t, err)
	foreign, _, err := other.Sign(Principal{ID: "x"})
	require.NoError(t, err)
	_, err = s.ValidateToken(ctx, foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLocalStrategy_RevokeToken_Invalid(t *testing.T) {
	t.Parallel()
	s := newTestStrategy(t, newMemUserStore(), false)

	err := s.RevokeToken(context.Background(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRolesFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{RoleAdmin, RoleUser}, RolesFor(AdminEmail))
	assert.Equal(t, []string{RoleUser}, RolesFor("someone@example.com"))
}
