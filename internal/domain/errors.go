package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidUserID is returned when a user ID is not 36 hex digits and dashes.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyEmail is returned when an email address is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrEmptyDisplayName is returned when a display name is missing.
	ErrEmptyDisplayName = errors.New("display name cannot be empty")

	// ErrInvalidUserStatus is returned for a status outside the known set.
	ErrInvalidUserStatus = errors.New("invalid user status")

	// ErrInvalidAuditResult is returned for an audit result other than success or failure.
	ErrInvalidAuditResult = errors.New("invalid audit result")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
