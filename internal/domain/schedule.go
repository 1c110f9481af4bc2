package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// OperatingHoursRule is the weekly opening rule for one weekday
// (0=Sunday .. 6=Saturday). At most one rule exists per weekday.
// A weekday with no rule at all is treated as unconstrained by the
// availability evaluator, not as closed.
type OperatingHoursRule struct {
	ID        int64
	DayOfWeek int // 0=Sunday .. 6=Saturday
	IsOpen    bool
	OpenTime  *types.TimeString // set when IsOpen, OpenTime < CloseTime
	CloseTime *types.TimeString
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BlockType tags a date block. Informational only: the availability
// evaluator treats all types identically.
type BlockType string

const (
	BlockTypeVacation           BlockType = "vacation"
	BlockTypeCustom             BlockType = "custom"
	BlockTypeMaintenance        BlockType = "maintenance"
	BlockTypeExternalCommitment BlockType = "external_commitment"
)

// ValidBlockType reports whether t is one of the known block types.
func ValidBlockType(t BlockType) bool {
	switch t {
	case BlockTypeVacation, BlockTypeCustom, BlockTypeMaintenance, BlockTypeExternalCommitment:
		return true
	}
	return false
}

// DateBlock is an ad-hoc unavailability range set by the studio owner:
// a single day or a span of days, whole-day or limited to a time window.
// Blocks only affect future availability checks; appointments that already
// exist inside a block keep their slot.
type DateBlock struct {
	ID          int64
	Title       string
	Description *string
	BlockType   BlockType
	StartDate   time.Time // date-only, StartDate <= EndDate
	EndDate     time.Time
	StartTime   *types.TimeString // both set or both nil; nil pair = all-day
	EndTime     *types.TimeString
	CreatedBy   *uuid.UUID
	CreatedAt   time.Time
}

// IsAllDay reports whether the block covers whole days.
func (b *DateBlock) IsAllDay() bool {
	return b.StartTime == nil && b.EndTime == nil
}

// IsSingleDay reports whether the block covers exactly one calendar day.
func (b *DateBlock) IsSingleDay() bool {
	return SameDay(b.StartDate, b.EndDate)
}

// ContainsDate reports whether date falls inside [StartDate, EndDate],
// inclusive at day granularity.
func (b *DateBlock) ContainsDate(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(b.StartDate)) && !d.After(DateOnly(b.EndDate))
}

// DateOnly normalizes t to midnight for day-level comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two instants fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
