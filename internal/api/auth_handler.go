package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service/audit"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// AuthHandler handles authentication-related API requests.
type AuthHandler struct {
	strategies *auth.Resolver
	audit      audit.Recorder
	logger     *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(strategies *auth.Resolver, recorder audit.Recorder, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		strategies: strategies,
		audit:      recorder,
		logger:     logger.With("component", "auth_handler"),
	}
}

// Login handles POST /auth/login with the default strategy.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	strategy, err := h.strategies.Default()
	if err != nil {
		HandleAPIError(w, r, err, "Authentication unavailable")
		return
	}

	event := requestEvent(r, audit.ActionLogin, "session")

	principal, err := strategy.Authenticate(r.Context(), auth.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		event.Result = domain.AuditFailure
		event.ErrorMessage = GetSafeErrorMessage(err)
		event.Metadata = map[string]any{"provider": string(strategy.Name())}
		h.audit.Record(r.Context(), event)

		if errors.Is(err, auth.ErrInvalidCredentials) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, err.Error(), shared.WithElevatedLogLevel())
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	token, err := strategy.GenerateTokens(r.Context(), principal)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to generate authentication token")
		return
	}

	event.Result = domain.AuditSuccess
	event.UserID = principal.ID
	event.ResourceID = principal.ID
	event.Metadata = map[string]any{"provider": string(strategy.Name())}
	h.audit.Record(r.Context(), event)

	shared.RespondWithJSON(w, r, http.StatusOK, LoginResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		ExpiresIn:    token.ExpiresIn,
		User:         principal,
	})
}

// Logout handles POST /auth/logout by revoking the request's bearer token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	strategy, err := h.strategies.Default()
	if err != nil {
		HandleAPIError(w, r, err, "Authentication unavailable")
		return
	}

	if err := strategy.RevokeToken(r.Context(), shared.TokenFrom(r.Context())); err != nil {
		HandleAPIError(w, r, err, "Failed to revoke token")
		return
	}

	event := requestEvent(r, audit.ActionLogout, "session")
	event.Result = domain.AuditSuccess
	event.UserID = principal.ID
	event.ResourceID = principal.ID
	h.audit.Record(r.Context(), event)

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /auth/me.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, err := principalFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, principal)
}

func requestEvent(r *http.Request, action, resource string) domain.AuditEvent {
	return domain.AuditEvent{
		Action:    action,
		Resource:  resource,
		IPAddress: r.RemoteAddr,
		UserAgent: r.UserAgent(),
	}
}
