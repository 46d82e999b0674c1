package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTokenLifetime is the access token lifetime.
const DefaultTokenLifetime = 3600 * time.Second

// tokenLeeway is the clock skew tolerated when validating exp/nbf/iat.
const tokenLeeway = 30 * time.Second

// Claims is the payload of an access token.
type Claims struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName"`
	Roles       []string `json:"roles"`
	jwt.RegisteredClaims
}

// Principal returns the principal the claims were issued for.
func (c *Claims) Principal() Principal {
	roles := make([]string, len(c.Roles))
	copy(roles, c.Roles)
	return Principal{ID: c.ID, Email: c.Email, DisplayName: c.DisplayName, Roles: roles}
}

// TokenSigner issues and parses HS256 access tokens.
type TokenSigner struct {
	secret   []byte
	lifetime time.Duration
	timeFunc func() time.Time
}

// NewTokenSigner creates a signer. A non-positive lifetime uses
// DefaultTokenLifetime.
func NewTokenSigner(secret string, lifetime time.Duration) (*TokenSigner, error) {
	if secret == "" {
		return nil, errors.New("token secret must not be empty")
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}
	return &TokenSigner{
		secret:   []byte(secret),
		lifetime: lifetime,
		timeFunc: time.Now,
	}, nil
}

// Lifetime returns how long issued tokens stay valid.
func (s *TokenSigner) Lifetime() time.Duration {
	return s.lifetime
}

// Sign issues a token for p.
func (s *TokenSigner) Sign(p Principal) (string, *Claims, error) {
	now := s.timeFunc()
	claims := &Claims{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Roles:       p.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, claims, nil
}

// Parse validates the signature and time claims of tokenString.
func (s *TokenSigner) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(tokenLeeway),
		jwt.WithTimeFunc(s.timeFunc),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, fmt.Errorf("%w: token not valid yet", ErrInvalidToken)
		default:
			return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
