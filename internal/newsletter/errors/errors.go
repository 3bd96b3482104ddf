package errors

import "errors"

var (
	ErrNotFound = errors.New("subscription not found")

	ErrInvalidID = errors.New("invalid subscription ID format")

	ErrDuplicateKey = errors.New("subscription already exists")
)
