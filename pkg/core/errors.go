package core

import "errors"

// Common errors.
var (
	// ErrNotFound signals an unknown document ID or model name.
	ErrNotFound = errors.New("not found")

	// ErrValidation signals a draft missing required fields.
	ErrValidation = errors.New("validation failed")

	// ErrReadOnly signals a write attempt on a read-only repository.
	ErrReadOnly = errors.New("repository is in read-only mode")
)
