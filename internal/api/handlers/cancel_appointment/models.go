package cancel_appointment

// CancelAppointmentRequest is the HTTP request model. The body is
// optional; an empty reason is allowed.
type CancelAppointmentRequest struct {
	CancellationReason string `json:"cancellationReason,omitempty"`
}

// CancelAppointmentResponse confirms the cancellation
type CancelAppointmentResponse struct {
	Message string `json:"message"`
}
