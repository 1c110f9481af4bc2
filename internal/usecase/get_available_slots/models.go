package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// Request asks for the availability of every published slot on one date
type Request struct {
	ServiceID uuid.UUID // catalog entry, sets the session duration
	Date      time.Time // requested calendar date (date-only)
}

// Response carries the evaluated slot grid
type Response struct {
	Date            time.Time // date the slots were requested for
	ServiceID       uuid.UUID
	DurationMinutes int    // session length used for the evaluation
	Stale           bool   // true when answered from a degraded schedule snapshot
	Slots           []Slot // the full published grid with per-slot availability
}

// Slot is one position of the published grid
type Slot struct {
	StartTime types.TimeString // e.g. "10:00"
	Available bool
}
