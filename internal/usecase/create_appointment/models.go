package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// Request asks to book one slot. The client identity fields come from the
// authenticated profile and are denormalized onto the appointment, so the
// booking keeps its history even if the profile changes later.
type Request struct {
	ClientID  uuid.UUID
	ServiceID uuid.UUID
	Date      time.Time        // requested calendar date (date-only)
	StartTime types.TimeString // e.g. "10:00"
	Notes     *string

	ClientName  string
	ClientEmail string
	ClientPhone *string
}

// Response carries the created appointment
type Response struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	ServiceID       uuid.UUID
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string

	ServiceName  string
	ServicePrice float64
	ClientName   string
	ClientEmail  string
	ClientPhone  *string
	Notes        *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
