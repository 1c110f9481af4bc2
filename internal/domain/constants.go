package domain

// Booking rules
const (
	// MinLeadTimeMinutes is the fixed preparation margin before a same-day
	// slot can be booked.
	MinLeadTimeMinutes = 30

	// The published booking grid: every 30 minutes from 08:00 through 20:00
	// inclusive. Operating hours and blocks narrow it further.
	GridStartMinutes = 8 * 60
	GridEndMinutes   = 20 * 60
	GridStepMinutes  = 30
)

// Business validation constants
const (
	MinServiceDurationMinutes = 15
	MaxServiceDurationMinutes = 240

	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlockTitleLength         = 255
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses lists statuses that release the slot.
// Used when filtering appointments for availability checks.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
}

// ActiveStatuses lists statuses that keep the slot occupied.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
