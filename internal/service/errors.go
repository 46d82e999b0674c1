package service

import "errors"

// Service-level sentinel errors. The API layer maps them to status codes.
var (
	// ErrForbidden indicates the caller may not act on the requested resource.
	ErrForbidden = errors.New("operation not permitted")
)
