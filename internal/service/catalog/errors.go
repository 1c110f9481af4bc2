package catalog

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog entry does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
