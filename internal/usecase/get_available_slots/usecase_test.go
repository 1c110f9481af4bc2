package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
	"github.com/touchedelumiere/TDL-BookingService/pkg/ptr"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

type fakeCatalogRepo struct {
	service *domain.TherapyService
	err     error
}

func (f *fakeCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyService, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fakeSchedule struct {
	hours  []domain.OperatingHoursRule
	blocks []domain.DateBlock
	stale  bool
}

func (f *fakeSchedule) LoadForAvailability(ctx context.Context) ([]domain.OperatingHoursRule, []domain.DateBlock, bool) {
	return f.hours, f.blocks, f.stale
}

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustTime(t *testing.T, s string) types.TimeString {
	t.Helper()
	ts, err := types.NewTimeStringFromString(s)
	require.NoError(t, err)
	return ts
}

func openRule(t *testing.T, day int, open, close string) domain.OperatingHoursRule {
	t.Helper()
	o := mustTime(t, open)
	c := mustTime(t, close)
	return domain.OperatingHoursRule{DayOfWeek: day, IsOpen: true, OpenTime: &o, CloseTime: &c}
}

func massageService() *domain.TherapyService {
	return &domain.TherapyService{
		ID:              uuid.New(),
		NamePT:          "Massagem Relaxante",
		DurationMinutes: 60,
		Price:           65,
		Active:          true,
	}
}

func newUseCase(appointments *fakeAppointmentRepo, catalog *fakeCatalogRepo, schedule *fakeSchedule, now time.Time) *UseCase {
	uc := NewUseCase(appointments, catalog, schedule, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecuteFullGridWhenUnconstrained(t *testing.T) {
	service := massageService()
	// Monday, far in the future relative to now
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	// 08:00 through 20:00 inclusive, every 30 minutes
	assert.Len(t, resp.Slots, 25)
	assert.Equal(t, "08:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "20:00", resp.Slots[len(resp.Slots)-1].StartTime.String())
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available, "slot %s should be available", slot.StartTime)
	}
	assert.False(t, resp.Stale)
	assert.Equal(t, 60, resp.DurationMinutes)
}

func TestExecuteMarksBookedSlotsUnavailable(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	appointments := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				AppointmentDate: date,
				StartTime:       mustTime(t, "10:00"),
				DurationMinutes: 60,
				Status:          domain.StatusConfirmed,
			},
		},
	}

	uc := newUseCase(appointments, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	byTime := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byTime[slot.StartTime.String()] = slot.Available
	}

	// 60-minute candidates overlapping [10:00, 11:00)
	assert.False(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	// neighbours stay open
	assert.True(t, byTime["09:00"])
	assert.True(t, byTime["11:00"])
}

func TestExecuteRespectsOperatingHours(t *testing.T) {
	service := massageService()
	// 2025-10-13 is a Monday
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	schedule := &fakeSchedule{
		hours: []domain.OperatingHoursRule{openRule(t, 1, "08:00", "18:00")},
	}

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, schedule, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	byTime := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byTime[slot.StartTime.String()] = slot.Available
	}

	assert.True(t, byTime["08:00"])
	// start-before-close is the only closing check, so 17:30 stays bookable
	assert.True(t, byTime["17:30"])
	assert.False(t, byTime["18:00"])
	assert.False(t, byTime["19:30"])
}

func TestExecuteClosedDayYieldsNoAvailability(t *testing.T) {
	service := massageService()
	// 2025-10-12 is a Sunday
	date := time.Date(2025, 10, 12, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	schedule := &fakeSchedule{
		hours: []domain.OperatingHoursRule{{DayOfWeek: 0, IsOpen: false}},
	}

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, schedule, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.False(t, slot.Available, "slot %s should be unavailable on a closed day", slot.StartTime)
	}
}

func TestExecuteAppointmentLoadFailureDegradesToStale(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	appointments := &fakeAppointmentRepo{err: assert.AnError}
	uc := newUseCase(appointments, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	assert.True(t, resp.Stale)
	for _, slot := range resp.Slots {
		assert.True(t, slot.Available)
	}
}

func TestExecutePropagatesStaleScheduleFlag(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeSchedule{stale: true}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)
	assert.True(t, resp.Stale)
}

func TestExecuteSameDayLeadTime(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	// requesting today's slots at 10:05
	now := time.Date(2025, 10, 13, 10, 5, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	byTime := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byTime[slot.StartTime.String()] = slot.Available
	}

	// 30-minute lead: 10:30 is 25 minutes away and rejected, 11:00 passes
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"])
}

func TestExecuteServiceNotFound(t *testing.T) {
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{err: catalogRepo.ErrServiceNotFound}, &fakeSchedule{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: uuid.New(), Date: date})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteInactiveService(t *testing.T) {
	service := massageService()
	service.Active = false
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecutePastDateRejected(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeSchedule{}, now)

	_, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteDateBlockNarrowsDay(t *testing.T) {
	service := massageService()
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	schedule := &fakeSchedule{
		blocks: []domain.DateBlock{
			{
				Title:     "Manutenção",
				BlockType: domain.BlockTypeMaintenance,
				StartDate: date,
				EndDate:   date,
				StartTime: ptr.Ptr(mustTime(t, "09:00")),
				EndTime:   ptr.Ptr(mustTime(t, "12:00")),
			},
		},
	}

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, schedule, now)

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: service.ID, Date: date})
	require.NoError(t, err)

	byTime := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		byTime[slot.StartTime.String()] = slot.Available
	}

	// a 60-minute candidate at 08:30 runs into the block; 12:00 is clear
	assert.True(t, byTime["08:00"])
	assert.False(t, byTime["08:30"])
	assert.False(t, byTime["11:30"])
	assert.True(t, byTime["12:00"])
}
