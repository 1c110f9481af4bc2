package get_available_slots

import "errors"

var (
	// ErrServiceNotFound is returned when the catalog entry does not exist
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceInactive is returned when the catalog entry is disabled
	ErrServiceInactive = errors.New("service is not active")

	// ErrInvalidDate is returned for dates in the past
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal usecase failures
	ErrInternal = errors.New("usecase: internal error")
)
