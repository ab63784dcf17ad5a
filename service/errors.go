package service

import "errors"

// Sentinel errors for the controller layer to map onto HTTP statuses.
// ErrForbidden is rendered as 404 for conversation access so that
// membership cannot be probed.
var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrConflict   = errors.New("conflict")
)
