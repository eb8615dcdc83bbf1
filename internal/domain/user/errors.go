package user

import "errors"

var (
	// ErrInvalidInput indicates invalid input for user operations.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrStoreUnavailable indicates no document store is configured.
	ErrStoreUnavailable = errors.New("document store unavailable")
)
