package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrNotFound      = errors.New("resource not found")
	ErrParse         = errors.New("malformed document")
	ErrInvalidConfig = errors.New("invalid configuration")
)
