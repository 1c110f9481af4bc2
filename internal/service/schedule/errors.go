package schedule

import "errors"

var (
	// ErrBlockNotFound is returned when the date block does not exist
	ErrBlockNotFound = errors.New("date block not found")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
