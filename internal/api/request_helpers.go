package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// principalFromRequest returns the principal placed in the context by the
// auth middleware.
func principalFromRequest(r *http.Request) (auth.Principal, error) {
	p, ok := shared.PrincipalFrom(r.Context())
	if !ok {
		return auth.Principal{}, domain.ErrUnauthorized
	}
	return p, nil
}

// pathUserID parses a user ID path parameter.
func pathUserID(r *http.Request, param string) (domain.UserID, error) {
	raw := chi.URLParam(r, param)
	if raw == "" {
		return domain.UserID{}, fmt.Errorf("%w: %s is required", domain.ErrValidation, param)
	}
	return domain.ParseUserID(raw)
}

// decodeAndValidate decodes the JSON body into v and validates it, writing a
// 400 response on failure.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := shared.DecodeJSON(r, v); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return false
	}
	if err := shared.ValidateRequest(v); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error",
			shared.WithDetails(shared.ValidationMessages(err)...))
		return false
	}
	return true
}
