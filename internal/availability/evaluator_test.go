package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func ts(s string) types.TimeString {
	return types.TimeString(s)
}

func tsp(s string) *types.TimeString {
	t := ts(s)
	return &t
}

func candidate(d time.Time, start string, duration int) domain.CandidateSlot {
	return domain.CandidateSlot{Date: d, StartTime: ts(start), DurationMinutes: duration}
}

func appointment(d time.Time, start string, duration int, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		AppointmentDate: d,
		StartTime:       ts(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func openDay(weekday int, open, close string) domain.OperatingHoursRule {
	return domain.OperatingHoursRule{DayOfWeek: weekday, IsOpen: true, OpenTime: tsp(open), CloseTime: tsp(close)}
}

func closedDay(weekday int) domain.OperatingHoursRule {
	return domain.OperatingHoursRule{DayOfWeek: weekday, IsOpen: false}
}

// farFromNow is a fixed clock far away from every test date so the lead-time
// gate stays out of the way unless a test wants it.
var farFromNow = time.Date(2020, time.January, 1, 9, 0, 0, 0, time.Local)

func TestExistingAppointmentGateIsAbsolute(t *testing.T) {
	// Monday 2025-11-10
	day := date(2025, time.November, 10)
	booked := []*domain.Appointment{appointment(day, "10:00", 60, domain.StatusConfirmed)}

	// Even with wide-open hours and no blocks, the overlap rejects.
	hours := []domain.OperatingHoursRule{openDay(1, "08:00", "18:00")}

	tests := []struct {
		name  string
		start string
		dur   int
		want  bool
	}{
		{"full overlap", "10:00", 60, false},
		{"candidate ends inside", "09:30", 60, false},
		{"candidate starts inside", "10:30", 60, false},
		{"candidate swallows appointment", "09:30", 120, false},
		{"back-to-back before", "09:00", 60, true},
		{"back-to-back after", "11:00", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotAvailable(candidate(day, tt.start, tt.dur), booked, hours, nil, farFromNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExistingAppointmentGateOverridesBlocksAndHours(t *testing.T) {
	day := date(2025, time.November, 10)
	booked := []*domain.Appointment{appointment(day, "10:00", 60, domain.StatusPending)}

	// A block and closed hours both also covering 10:00 change nothing:
	// the rejection already happened at the appointment gate.
	hours := []domain.OperatingHoursRule{closedDay(1)}
	blocks := []domain.DateBlock{{
		Title: "manutencao", BlockType: domain.BlockTypeMaintenance,
		StartDate: day, EndDate: day,
	}}

	assert.False(t, IsSlotAvailable(candidate(day, "10:00", 60), booked, hours, blocks, farFromNow))
}

func TestCancelledAppointmentsDoNotBlock(t *testing.T) {
	day := date(2025, time.November, 10)
	booked := []*domain.Appointment{appointment(day, "10:00", 60, domain.StatusCancelled)}

	assert.True(t, IsSlotAvailable(candidate(day, "10:00", 60), booked, nil, nil, farFromNow))
}

func TestAppointmentOnOtherDateIgnored(t *testing.T) {
	day := date(2025, time.November, 10)
	other := date(2025, time.November, 11)
	booked := []*domain.Appointment{appointment(other, "10:00", 60, domain.StatusConfirmed)}

	assert.True(t, IsSlotAvailable(candidate(day, "10:00", 60), booked, nil, nil, farFromNow))
}

func TestOperatingHoursGate(t *testing.T) {
	// 2025-11-10 is a Monday (weekday 1).
	monday := date(2025, time.November, 10)
	sunday := date(2025, time.November, 9)

	hours := []domain.OperatingHoursRule{
		closedDay(0),
		openDay(1, "08:00", "18:00"),
	}

	tests := []struct {
		name string
		day  time.Time
		time string
		want bool
	}{
		{"inside hours", monday, "10:00", true},
		{"before opening", monday, "07:30", false},
		{"exactly at opening", monday, "08:00", true},
		{"exactly at closing", monday, "18:00", false},
		{"after closing", monday, "18:30", false},
		{"closed weekday", sunday, "10:00", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotAvailable(candidate(tt.day, tt.time, 60), nil, hours, nil, farFromNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMissingWeekdayRuleFailsOpen(t *testing.T) {
	// Rules exist only for Sunday; a Monday slot must not be rejected by
	// the operating-hours gate.
	monday := date(2025, time.November, 10)
	hours := []domain.OperatingHoursRule{closedDay(0)}

	assert.True(t, IsSlotAvailable(candidate(monday, "03:00", 60), nil, hours, nil, farFromNow))
}

func TestStartOnlyClosingCheck(t *testing.T) {
	// Documented leniency: a 60-minute session starting 17:30 under
	// 08:00-18:00 hours is accepted even though it ends 18:30.
	monday := date(2025, time.November, 10)
	hours := []domain.OperatingHoursRule{openDay(1, "08:00", "18:00")}

	assert.True(t, IsSlotAvailable(candidate(monday, "17:30", 60), nil, hours, nil, farFromNow))
}

func TestSingleDayPartialBlock(t *testing.T) {
	day := date(2025, time.November, 10)
	blocks := []domain.DateBlock{{
		Title: "compromisso", BlockType: domain.BlockTypeExternalCommitment,
		StartDate: day, EndDate: day,
		StartTime: tsp("10:00"), EndTime: tsp("12:00"),
	}}

	tests := []struct {
		name string
		time string
		dur  int
		want bool
	}{
		{"slot ends inside block", "09:30", 60, false},
		{"slot clear before block", "08:00", 60, true},
		{"slot starts inside block", "11:30", 60, false},
		{"slot starts at block end", "12:00", 60, true},
		{"slot ends at block start", "09:00", 60, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotAvailable(candidate(day, tt.time, tt.dur), nil, nil, blocks, farFromNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAllDayBlock(t *testing.T) {
	day := date(2025, time.November, 10)
	blocks := []domain.DateBlock{{
		Title: "ferias", BlockType: domain.BlockTypeVacation,
		StartDate: day, EndDate: day,
	}}

	assert.False(t, IsSlotAvailable(candidate(day, "08:00", 30), nil, nil, blocks, farFromNow))
	assert.False(t, IsSlotAvailable(candidate(day, "19:30", 30), nil, nil, blocks, farFromNow))
	assert.True(t, IsSlotAvailable(candidate(date(2025, time.November, 11), "08:00", 30), nil, nil, blocks, farFromNow))
}

func TestMultiDayPartialBlockEffectiveWindows(t *testing.T) {
	d1 := date(2025, time.November, 10)
	d2 := date(2025, time.November, 11)
	d3 := date(2025, time.November, 12)

	blocks := []domain.DateBlock{{
		Title: "viagem", BlockType: domain.BlockTypeVacation,
		StartDate: d1, EndDate: d3,
		StartTime: tsp("09:00"), EndTime: tsp("17:00"),
	}}

	tests := []struct {
		name string
		day  time.Time
		time string
		want bool
	}{
		{"first day before block start", d1, "08:00", true},
		{"first day evening still blocked", d1, "18:00", false},
		{"middle day early morning blocked", d2, "08:00", false},
		{"middle day evening blocked", d2, "19:00", false},
		{"last day evening free", d3, "18:00", true},
		{"last day inside window blocked", d3, "16:30", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotAvailable(candidate(tt.day, tt.time, 60), nil, nil, blocks, farFromNow)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLeadTimeGateOnCurrentDay(t *testing.T) {
	now := time.Date(2025, time.November, 10, 10, 0, 0, 0, time.Local)
	today := date(2025, time.November, 10)
	tomorrow := date(2025, time.November, 11)

	tests := []struct {
		name string
		day  time.Time
		time string
		want bool
	}{
		{"already past", today, "09:30", false},
		{"inside margin", today, "10:15", false},
		{"exactly at margin", today, "10:30", true},
		{"beyond margin", today, "11:00", true},
		{"other day ignores clock", tomorrow, "08:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSlotAvailable(candidate(tt.day, tt.time, 60), nil, nil, nil, now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluatorIsIdempotent(t *testing.T) {
	day := date(2025, time.November, 10)
	booked := []*domain.Appointment{appointment(day, "14:00", 90, domain.StatusConfirmed)}
	hours := []domain.OperatingHoursRule{openDay(1, "08:00", "18:00")}
	blocks := []domain.DateBlock{{
		Title: "almoco", BlockType: domain.BlockTypeCustom,
		StartDate: day, EndDate: day,
		StartTime: tsp("12:00"), EndTime: tsp("13:00"),
	}}

	c := candidate(day, "11:30", 60)
	first := IsSlotAvailable(c, booked, hours, blocks, farFromNow)
	second := IsSlotAvailable(c, booked, hours, blocks, farFromNow)
	assert.Equal(t, first, second)
}

func TestMalformedCandidateTimeRejected(t *testing.T) {
	day := date(2025, time.November, 10)
	assert.False(t, IsSlotAvailable(candidate(day, "2pm", 60), nil, nil, nil, farFromNow))
}
