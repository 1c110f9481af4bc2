package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAccessDenied is returned when the requester may not touch the appointment
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotConfirm is returned when the appointment is not pending
	ErrCannotConfirm = errors.New("appointment cannot be confirmed")

	// ErrCannotCancel is returned when the appointment is already inactive
	ErrCannotCancel = errors.New("appointment cannot be cancelled")

	// ErrCannotComplete is returned when the appointment is not confirmed
	ErrCannotComplete = errors.New("appointment cannot be completed")

	// ErrCannotRemind is returned when the appointment is not confirmed
	ErrCannotRemind = errors.New("appointment cannot be reminded")

	// ErrNoChannel is returned when no notification channel can reach the client
	ErrNoChannel = errors.New("no notification channel available")

	// ErrInvalidInput is returned on malformed request data
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on internal service failures
	ErrInternal = errors.New("service: internal error")
)
