package whatsapp

import "errors"

var (
	// ErrInvalidPhone is returned for numbers not in international +NN format
	ErrInvalidPhone = errors.New("whatsapp client: invalid phone number, expected international format like +5544999999999")

	// ErrInternal is returned on client-side failures
	ErrInternal = errors.New("whatsapp client: internal error")

	// ErrInvalidResponse is returned when the Graph API answers with an error status
	ErrInvalidResponse = errors.New("whatsapp client: invalid response")

	// ErrDisabled is returned when the client was built without credentials
	ErrDisabled = errors.New("whatsapp client: disabled, no credentials configured")
)
