package entities

import "errors"

// Error kinds. Specific errors wrap one of these so callers can branch on the
// kind with errors.Is without knowing every concrete error.
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrConflict          = errors.New("conflict")
	ErrStorage           = errors.New("storage failure")
)
