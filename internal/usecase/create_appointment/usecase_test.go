package create_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	created      *domain.Appointment
	getErr       error
	createErr    error
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = appointment.CreatedAt
	f.created = appointment
	return appointment, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
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

type fakeScheduleRepo struct {
	hours  []domain.OperatingHoursRule
	blocks []domain.DateBlock
	err    error
}

func (f *fakeScheduleRepo) GetOperatingHours(ctx context.Context) ([]domain.OperatingHoursRule, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.hours, nil
}

func (f *fakeScheduleRepo) ListDateBlocks(ctx context.Context, from time.Time) ([]domain.DateBlock, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.blocks, nil
}

// fakeTxManager runs the callback inline; serialization is the database's
// job, not the usecase's
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
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

func massageService() *domain.TherapyService {
	return &domain.TherapyService{
		ID:              uuid.New(),
		NamePT:          "Massagem Relaxante",
		DurationMinutes: 60,
		Price:           65,
		Active:          true,
	}
}

func validRequest(t *testing.T, serviceID uuid.UUID) *Request {
	t.Helper()
	return &Request{
		ClientID:    uuid.New(),
		ServiceID:   serviceID,
		Date:        time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:   mustTime(t, "10:00"),
		ClientName:  "Maria Silva",
		ClientEmail: "maria@example.com",
	}
}

func newUseCase(appointments *fakeAppointmentRepo, catalog *fakeCatalogRepo, schedule *fakeScheduleRepo, now time.Time) *UseCase {
	uc := NewUseCase(appointments, catalog, schedule, fakeTxManager{}, nopLogger{})
	uc.timeProvider = &fixedTime{now: now}
	return uc
}

func TestExecuteCreatesPendingAppointment(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	repo := &fakeAppointmentRepo{}

	uc := newUseCase(repo, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	req := validRequest(t, service.ID)
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, service.DurationMinutes, resp.DurationMinutes)
	assert.Equal(t, service.NamePT, resp.ServiceName)
	assert.Equal(t, service.Price, resp.ServicePrice)
	assert.Equal(t, req.ClientName, resp.ClientName)

	require.NotNil(t, repo.created)
	assert.Equal(t, domain.StatusPending, repo.created.Status)
	assert.Equal(t, "10:00", repo.created.StartTime.String())
}

func TestExecuteConflictingAppointmentRejected(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				AppointmentDate: date,
				StartTime:       mustTime(t, "10:30"),
				DurationMinutes: 60,
				Status:          domain.StatusPending,
			},
		},
	}

	uc := newUseCase(repo, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	assert.Nil(t, repo.created)
}

func TestExecuteCancelledAppointmentDoesNotConflict(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC)

	repo := &fakeAppointmentRepo{
		appointments: []*domain.Appointment{
			{
				AppointmentDate: date,
				StartTime:       mustTime(t, "10:00"),
				DurationMinutes: 60,
				Status:          domain.StatusCancelled,
			},
		},
	}

	uc := newUseCase(repo, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	require.NoError(t, err)
	require.NotNil(t, repo.created)
}

func TestExecuteClosedDayRejected(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	// 2025-10-13 is a Monday
	schedule := &fakeScheduleRepo{
		hours: []domain.OperatingHoursRule{{DayOfWeek: 1, IsOpen: false}},
	}

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, schedule, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecuteScheduleLoadFailureIsStrict(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service},
		&fakeScheduleRepo{err: assert.AnError}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestExecuteServiceNotFound(t *testing.T) {
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{err: catalogRepo.ErrServiceNotFound},
		&fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, uuid.New()))
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecuteInactiveServiceRejected(t *testing.T) {
	service := massageService()
	service.Active = false
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrServiceInactive)
}

func TestExecutePastDateRejected(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecuteValidation(t *testing.T) {
	service := massageService()
	now := time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{"missing client", func(req *Request) { req.ClientID = uuid.Nil }},
		{"missing service", func(req *Request) { req.ServiceID = uuid.Nil }},
		{"missing date", func(req *Request) { req.Date = time.Time{} }},
		{"malformed time", func(req *Request) { req.StartTime = "25:99" }},
		{"missing name", func(req *Request) { req.ClientName = "  " }},
		{"missing email", func(req *Request) { req.ClientEmail = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest(t, service.ID)
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteSameDayLeadTimeEnforced(t *testing.T) {
	service := massageService()
	// booking today at 09:45 for a 10:00 slot: only 15 minutes of lead
	now := time.Date(2025, 10, 13, 9, 45, 0, 0, time.UTC)

	uc := newUseCase(&fakeAppointmentRepo{}, &fakeCatalogRepo{service: service}, &fakeScheduleRepo{}, now)

	_, err := uc.Execute(context.Background(), validRequest(t, service.ID))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}
