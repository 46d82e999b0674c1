package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/platform/logger"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// AuthMiddleware authenticates bearer tokens with an auth.Strategy.
type AuthMiddleware struct {
	strategy auth.Strategy
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(strategy auth.Strategy) *AuthMiddleware {
	return &AuthMiddleware{strategy: strategy}
}

// Authenticate validates the bearer token from the Authorization header and
// stores the principal in the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Authorization header required")
			return
		}

		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" || strings.Contains(token, " ") {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid authorization format")
			return
		}

		principal, err := m.strategy.ValidateToken(r.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token expired")
			case errors.Is(err, auth.ErrRevokedToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Token revoked", shared.WithElevatedLogLevel())
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid token")
			default:
				shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Authentication error", err)
			}
			return
		}

		ctx := shared.WithPrincipal(r.Context(), principal, token)
		log := logger.FromContextOrDefault(ctx, slog.Default()).With(slog.String("user_id", principal.ID))
		ctx = logger.WithLogger(ctx, log)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole rejects authenticated requests whose principal lacks role.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := shared.PrincipalFrom(r.Context())
			if !ok {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
				return
			}
			if !p.HasRole(role) {
				shared.RespondWithError(w, r, http.StatusForbidden, "Insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
