package catalog

import "errors"

// Validation errors, caught before any network call.
var (
	ErrEmptyName = errors.New("name cannot be empty")
	ErrInvalidID = errors.New("invalid catalog entry ID")
)
