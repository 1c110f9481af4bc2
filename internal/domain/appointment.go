package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Who triggered a cancellation. Stored alongside the cancellation reason.
const (
	CancelledByClient = "client"
	CancelledByStudio = "studio"
)

// Appointment represents a booked therapy session
type Appointment struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ServiceID       uuid.UUID
	AppointmentDate time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          AppointmentStatus

	// Denormalized data for history and notifications: the appointment keeps
	// its own copy of service and client details so catalog edits and profile
	// changes never rewrite past bookings.
	ServiceName  string
	ServicePrice float64
	ClientName   string
	ClientEmail  string
	ClientPhone  *string
	Notes        *string

	// Google Calendar event created on confirmation, removed on cancellation.
	CalendarEventID *string

	CancellationReason *string
	CancelledBy        *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the appointment still occupies its slot.
// Only cancellation frees a slot; pending, confirmed and completed
// appointments all keep blocking the calendar position they hold.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// CanBeConfirmed returns true if the appointment can be confirmed
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status == StatusPending
}

// CanBeCancelled returns true if the appointment can be cancelled
func (a *Appointment) CanBeCancelled() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// CanBeCompleted returns true if the appointment can be marked completed
func (a *Appointment) CanBeCompleted() bool {
	return a.Status == StatusConfirmed
}

// EndTime returns the wall-clock end of the session.
func (a *Appointment) EndTime() (types.TimeString, error) {
	return a.StartTime.AddMinutes(a.DurationMinutes)
}

// AppointmentsFilter narrows admin appointment listings.
type AppointmentsFilter struct {
	ClientID        *uuid.UUID         // filter by client (optional)
	Date            *time.Time         // single calendar date (optional)
	StartDate       *time.Time         // period start (optional)
	EndDate         *time.Time         // period end (optional)
	Status          *AppointmentStatus // filter by status (optional)
	IncludeInactive bool               // include cancelled appointments
}
