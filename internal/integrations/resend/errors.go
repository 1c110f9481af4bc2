package resend

import "errors"

var (
	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("resend client: internal error")

	// ErrInvalidResponse is returned when the API answers with an error status
	ErrInvalidResponse = errors.New("resend client: invalid response")

	// ErrDisabled is returned when the client was built without an API key
	ErrDisabled = errors.New("resend client: disabled, no API key configured")
)
