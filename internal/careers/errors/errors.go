package errors

import "errors"

var (
	ErrNotFound = errors.New("application not found")

	ErrInvalidID = errors.New("invalid application ID format")
)
