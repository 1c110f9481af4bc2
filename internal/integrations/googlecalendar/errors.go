package googlecalendar

import "errors"

var (
	// ErrNotConnected is returned when no OAuth token set is stored
	ErrNotConnected = errors.New("googlecalendar client: calendar not connected")

	// ErrUnauthorized is returned when Google rejects the token set.
	// The stored tokens are cleared before it is returned.
	ErrUnauthorized = errors.New("googlecalendar client: authorization revoked")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("googlecalendar client: internal error")

	// ErrInvalidResponse is returned when the API answers with an error status
	ErrInvalidResponse = errors.New("googlecalendar client: invalid response")
)
