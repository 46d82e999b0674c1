package auth

import "context"

// Provider names an authentication mechanism.
type Provider string

// Known providers. Only local has an implementation.
const (
	ProviderLocal Provider = "local"
	ProviderOAuth Provider = "oauth"
	ProviderSAML  Provider = "saml"
	ProviderJWT   Provider = "jwt"
)

// Role names granted to authenticated principals.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Credentials are the inputs of a password login.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Principal is an authenticated user as seen by request handlers.
type Principal struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
}

// HasRole reports whether p holds role.
func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Token is an issued access token.
type Token struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	// ExpiresIn is the access token lifetime in seconds.
	ExpiresIn int `json:"expiresIn"`
}

// Strategy authenticates users and manages their tokens.
type Strategy interface {
	Name() Provider

	// Authenticate returns ErrInvalidCredentials when the credentials do not
	// identify a user.
	Authenticate(ctx context.Context, creds Credentials) (Principal, error)

	// ValidateToken returns the principal a token was issued for. Revoked,
	// expired and malformed tokens are rejected.
	ValidateToken(ctx context.Context, token string) (Principal, error)

	GenerateTokens(ctx context.Context, principal Principal) (Token, error)

	RevokeToken(ctx context.Context, token string) error
}
