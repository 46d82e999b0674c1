package mocks

import (
	"context"

	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// MockAuthStrategy implements auth.Strategy with overridable functions.
// Unset functions return zero values.
type MockAuthStrategy struct {
	Provider         auth.Provider
	AuthenticateFn   func(ctx context.Context, creds auth.Credentials) (auth.Principal, error)
	ValidateTokenFn  func(ctx context.Context, token string) (auth.Principal, error)
	GenerateTokensFn func(ctx context.Context, p auth.Principal) (auth.Token, error)
	RevokeTokenFn    func(ctx context.Context, token string) error

	// Revoked collects tokens passed to RevokeToken.
	Revoked []string
}

var _ auth.Strategy = (*MockAuthStrategy)(nil)

// Name implements auth.Strategy.
func (m *MockAuthStrategy) Name() auth.Provider {
	if m.Provider == "" {
		return auth.ProviderLocal
	}
	return m.Provider
}

// Authenticate implements auth.Strategy.
func (m *MockAuthStrategy) Authenticate(ctx context.Context, creds auth.Credentials) (auth.Principal, error) {
	if m.AuthenticateFn != nil {
		return m.AuthenticateFn(ctx, creds)
	}
	return auth.Principal{}, nil
}

// ValidateToken implements auth.Strategy.
func (m *MockAuthStrategy) ValidateToken(ctx context.Context, token string) (auth.Principal, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	return auth.Principal{}, nil
}

// GenerateTokens implements auth.Strategy.
func (m *MockAuthStrategy) GenerateTokens(ctx context.Context, p auth.Principal) (auth.Token, error) {
	if m.GenerateTokensFn != nil {
		return m.GenerateTokensFn(ctx, p)
	}
	return auth.Token{AccessToken: "mock-token", ExpiresIn: 3600}, nil
}

// RevokeToken implements auth.Strategy.
func (m *MockAuthStrategy) RevokeToken(ctx context.Context, token string) error {
	m.Revoked = append(m.Revoked, token)
	if m.RevokeTokenFn != nil {
		return m.RevokeTokenFn(ctx, token)
	}
	return nil
}
