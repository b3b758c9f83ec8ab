package errors

import "errors"

var (
	ErrNotFound  = errors.New("resource not found")
	ErrUnhealthy = errors.New("store did not acknowledge ping")
)
