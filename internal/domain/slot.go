package domain

import (
	"time"

	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// CandidateSlot is an ephemeral slot under evaluation: a start time on a
// date combined with the selected service's duration. Never persisted.
type CandidateSlot struct {
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

// End returns the candidate's exclusive end time.
func (c CandidateSlot) End() (types.TimeString, error) {
	return c.StartTime.AddMinutes(c.DurationMinutes)
}

// AvailableSlot is one grid entry in an availability response.
type AvailableSlot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}
