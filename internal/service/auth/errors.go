package auth

import "errors"

// Common authentication errors
var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	// The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("Invalid credentials")

	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrRevokedToken indicates the token was revoked before it expired
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrStrategyNotFound is returned by the resolver for an unregistered provider.
	ErrStrategyNotFound = errors.New("auth strategy not found")
)
