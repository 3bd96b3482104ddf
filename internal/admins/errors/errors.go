package errors

import "errors"

var (
	ErrNotFound = errors.New("admin not found")

	ErrInvalidID = errors.New("invalid admin ID format")

	ErrDuplicateKey = errors.New("admin already exists")
)
