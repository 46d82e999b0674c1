package api

import (
	"time"

	"github.com/ukp-platform/ukp-api/internal/domain"
	"github.com/ukp-platform/ukp-api/internal/service/auth"
)

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse defines the successful response of the login endpoint.
type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken,omitempty"`
	ExpiresIn    int            `json:"expiresIn"`
	User         auth.Principal `json:"user"`
}

// CreateUserRequest defines the payload for creating a user.
type CreateUserRequest struct {
	Email       string `json:"email"       validate:"required,email,max=255"`
	DisplayName string `json:"displayName" validate:"required,max=255"`
	Password    string `json:"password"    validate:"omitempty,min=8,max=72"`
}

// UserResponse is the public representation of a user.
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Status:      string(u.Status),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// StatusResponse is the body of the simple health check.
type StatusResponse struct {
	Status string `json:"status"`
}

// UnhealthyResponse is the body of a failed simple health check.
type UnhealthyResponse struct {
	Status       string   `json:"status"`
	Error        string   `json:"error"`
	Dependencies []string `json:"dependencies"`
	TraceID      string   `json:"trace_id,omitempty"`
}
