// Package availability implements the slot availability evaluator: a pure
// predicate deciding whether a candidate appointment slot can be booked
// given existing appointments, weekly operating hours and ad-hoc date
// blocks.
//
// Inputs must carry well-formed "HH:MM" times and calendar dates; the
// evaluator does not validate shapes, that happens at the loading boundary.
// All comparisons run on minutes-since-midnight integers in the studio's
// local timezone.
package availability

import (
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// IsSlotAvailable evaluates the candidate through four ordered gates and
// returns false at the first one that rejects:
//
//  1. Lead-time gate: on the current day, slots starting less than
//     MinLeadTimeMinutes from now are rejected. Other dates skip the gate.
//  2. Existing-appointment gate: overlap with any non-cancelled appointment
//     on the same date rejects. This gate is absolute: a booked slot is
//     never reclaimed by a later hours or block change, only by explicit
//     cancellation.
//  3. Operating-hours gate: a closed weekday rejects; an open weekday with
//     times rejects when the slot *starts* outside [open, close). The slot's
//     end is deliberately not checked against closing time, so a session may
//     run past close. A weekday with no rule passes unconditionally.
//  4. Date-block gate: any block covering the date rejects when all-day, or
//     when the slot overlaps the block's effective window for that day.
//
// The function is pure: no side effects, identical inputs give identical
// results.
func IsSlotAvailable(
	candidate domain.CandidateSlot,
	appointments []*domain.Appointment,
	hours []domain.OperatingHoursRule,
	blocks []domain.DateBlock,
	now time.Time,
) bool {
	slotStart, err := candidate.StartTime.Minutes()
	if err != nil {
		return false
	}
	slotEnd := slotStart + candidate.DurationMinutes

	if !passesLeadTimeGate(slotStart, candidate.Date, now) {
		return false
	}
	if !passesAppointmentGate(slotStart, slotEnd, candidate.Date, appointments) {
		return false
	}
	if !passesOperatingHoursGate(slotStart, candidate.Date, hours) {
		return false
	}
	if !passesDateBlockGate(slotStart, slotEnd, candidate.Date, blocks) {
		return false
	}
	return true
}

// passesLeadTimeGate rejects same-day slots starting before now plus the
// preparation margin. Dates other than today pass; the past-date check
// belongs to request validation, not the evaluator.
func passesLeadTimeGate(slotStart int, date time.Time, now time.Time) bool {
	if !domain.SameDay(date, now) {
		return true
	}
	currentMinutes := now.Hour()*60 + now.Minute()
	return slotStart >= currentMinutes+domain.MinLeadTimeMinutes
}

// passesAppointmentGate rejects when the slot overlaps any active
// appointment on the same date. Half-open intervals with strict
// comparisons: back-to-back slots do not conflict.
func passesAppointmentGate(slotStart, slotEnd int, date time.Time, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if !domain.SameDay(appt.AppointmentDate, date) {
			continue
		}
		apptStart, err := appt.StartTime.Minutes()
		if err != nil {
			// Malformed stored time: skip rather than block the whole day.
			continue
		}
		apptEnd := apptStart + appt.DurationMinutes
		if slotStart < apptEnd && slotEnd > apptStart {
			return false
		}
	}
	return true
}

// passesOperatingHoursGate applies the weekly rule for the candidate's
// weekday. No rule for the weekday means no restriction.
func passesOperatingHoursGate(slotStart int, date time.Time, hours []domain.OperatingHoursRule) bool {
	rule := ruleForWeekday(hours, int(date.Weekday()))
	if rule == nil {
		return true
	}
	if !rule.IsOpen {
		return false
	}
	if rule.OpenTime == nil || rule.CloseTime == nil {
		return true
	}
	open, err := rule.OpenTime.Minutes()
	if err != nil {
		return true
	}
	close, err := rule.CloseTime.Minutes()
	if err != nil {
		return true
	}
	// Only the start must fall inside opening hours.
	return slotStart >= open && slotStart < close
}

// passesDateBlockGate checks the candidate against every block covering its
// date.
func passesDateBlockGate(slotStart, slotEnd int, date time.Time, blocks []domain.DateBlock) bool {
	for _, block := range blocks {
		if !block.ContainsDate(date) {
			continue
		}
		if block.IsAllDay() {
			return false
		}
		winStart, winEnd, ok := effectiveWindow(&block, date)
		if !ok {
			continue
		}
		if slotStart < winEnd && slotEnd > winStart {
			return false
		}
	}
	return true
}

// effectiveWindow computes the minutes a partial-time block occupies on one
// specific day of its range. A multi-day block with times blocks from its
// start time to end-of-day on the first day, the whole day on middle days,
// and from start-of-day to its end time on the last day.
func effectiveWindow(block *domain.DateBlock, date time.Time) (start, end int, ok bool) {
	if block.StartTime == nil || block.EndTime == nil {
		return 0, 0, false
	}
	blockStart, err := block.StartTime.Minutes()
	if err != nil {
		return 0, 0, false
	}
	blockEnd, err := block.EndTime.Minutes()
	if err != nil {
		return 0, 0, false
	}

	day := domain.DateOnly(date)
	firstDay := day.Equal(domain.DateOnly(block.StartDate))
	lastDay := day.Equal(domain.DateOnly(block.EndDate))

	switch {
	case firstDay && lastDay: // single-day block
		return blockStart, blockEnd, true
	case firstDay:
		return blockStart, types.MinutesPerDay, true
	case lastDay:
		return 0, blockEnd, true
	default: // middle day
		return 0, types.MinutesPerDay, true
	}
}

func ruleForWeekday(hours []domain.OperatingHoursRule, weekday int) *domain.OperatingHoursRule {
	for i := range hours {
		if hours[i].DayOfWeek == weekday {
			return &hours[i]
		}
	}
	return nil
}
