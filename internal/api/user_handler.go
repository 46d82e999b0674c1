package api

import (
	"log/slog"
	"net/http"

	"github.com/ukp-platform/ukp-api/internal/api/shared"
	"github.com/ukp-platform/ukp-api/internal/service"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// UserHandler serves the user endpoints. Every route expects an
// authenticated principal.
type UserHandler struct {
	users  service.UserService
	logger *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{users: users, logger: logger.With("component", "user_handler")}
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	caller, err := principalFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CreateUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.CreateUser(r.Context(), service.CreateUserCommand{
		Email:       req.Email,
		DisplayName: req.DisplayName,
		Password:    req.Password,
		ActorID:     caller.ID,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewUserResponse(user))
}

// GetUser handles GET /users/{id}. Users may read their own record; admins
// may read any.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, err := principalFromRequest(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	id, err := pathUserID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if caller.ID != id.String() && !caller.HasRole(auth.RoleAdmin) {
		HandleAPIError(w, r, service.ErrForbidden, "")
		return
	}

	user, err := h.users.GetUser(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve user")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewUserResponse(user))
}
