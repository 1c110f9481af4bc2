package appointments

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	appointmentRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/appointment"
	"github.com/touchedelumiere/TDL-BookingService/internal/integrations/googlecalendar"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/appointments/models"
	"github.com/touchedelumiere/TDL-BookingService/pkg/ptr"
)

type fakeAppointmentRepo struct {
	appointments map[uuid.UUID]*domain.Appointment

	updatedStatus     map[uuid.UUID]domain.AppointmentStatus
	cancelledBy       string
	cancelReason      string
	calendarEventSets map[uuid.UUID]*string
	deletedAll        int64
}

func newFakeAppointmentRepo(appointments ...*domain.Appointment) *fakeAppointmentRepo {
	repo := &fakeAppointmentRepo{
		appointments:      make(map[uuid.UUID]*domain.Appointment),
		updatedStatus:     make(map[uuid.UUID]domain.AppointmentStatus),
		calendarEventSets: make(map[uuid.UUID]*string),
	}
	for _, a := range appointments {
		repo.appointments[a.ID] = a
	}
	return repo
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Appointment, error) {
	a, ok := f.appointments[id]
	if !ok {
		return nil, appointmentRepo.ErrAppointmentNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *fakeAppointmentRepo) GetByClientID(_ context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if a.ClientID != clientID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) GetWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var result []*domain.Appointment
	for _, a := range f.appointments {
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		if !filter.IncludeInactive && !a.IsActive() {
			continue
		}
		result = append(result, a)
	}
	return result, nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.AppointmentStatus) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = status
	f.updatedStatus[id] = status
	return nil
}

func (f *fakeAppointmentRepo) Cancel(_ context.Context, id uuid.UUID, cancelledBy string, reason string) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.Status = domain.StatusCancelled
	f.cancelledBy = cancelledBy
	f.cancelReason = reason
	return nil
}

func (f *fakeAppointmentRepo) SetCalendarEventID(_ context.Context, id uuid.UUID, eventID *string) error {
	a, ok := f.appointments[id]
	if !ok {
		return appointmentRepo.ErrAppointmentNotFound
	}
	a.CalendarEventID = eventID
	f.calendarEventSets[id] = eventID
	return nil
}

func (f *fakeAppointmentRepo) DeleteAll(_ context.Context) (int64, error) {
	f.deletedAll = int64(len(f.appointments))
	f.appointments = make(map[uuid.UUID]*domain.Appointment)
	return f.deletedAll, nil
}

type fakeEmailClient struct {
	enabled bool
	err     error
	sent    []string // subjects
}

func (f *fakeEmailClient) Enabled() bool { return f.enabled }

func (f *fakeEmailClient) SendEmail(_ context.Context, _, subject, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, subject)
	return "email-id", nil
}

type fakeWhatsAppClient struct {
	enabled bool
	sent    []string // bodies
}

func (f *fakeWhatsAppClient) Enabled() bool { return f.enabled }

func (f *fakeWhatsAppClient) SendText(_ context.Context, _, body string) (string, error) {
	f.sent = append(f.sent, body)
	return "wa-id", nil
}

type fakeCalendarClient struct {
	connected bool
	insertErr error

	inserted []*googlecalendar.Event
	deleted  []string
}

func (f *fakeCalendarClient) Connected(_ context.Context) bool { return f.connected }

func (f *fakeCalendarClient) InsertEvent(_ context.Context, event *googlecalendar.Event) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, event)
	return "event-123", nil
}

func (f *fakeCalendarClient) DeleteEvent(_ context.Context, eventID string) error {
	f.deleted = append(f.deleted, eventID)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testStudio() StudioInfo {
	return StudioInfo{
		Name:     "Touche de Lumière",
		Address:  "Av. Tiradentes, 1234 - Maringá - PR",
		Phone:    "+55 44 99999-0000",
		Timezone: "America/Sao_Paulo",
	}
}

func pendingAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              uuid.New(),
		ClientID:        uuid.New(),
		ServiceID:       uuid.New(),
		AppointmentDate: time.Date(2025, 10, 13, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          domain.StatusPending,
		ServiceName:     "Massagem Relaxante",
		ServicePrice:    65,
		ClientName:      "Ana Souza",
		ClientEmail:     "ana@example.com",
		ClientPhone:     ptr.Ptr("+5544988887777"),
	}
}

func newService(repo *fakeAppointmentRepo, email *fakeEmailClient, wa *fakeWhatsAppClient, cal *fakeCalendarClient) *Service {
	return NewService(repo, email, wa, cal, testStudio(), nopLogger{})
}

func TestGetByID_ClientSeesOnlyOwn(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})
	ctx := context.Background()

	// owner
	got, err := svc.GetByID(ctx, appointment.ID, appointment.ClientID, false)
	require.NoError(t, err)
	assert.Equal(t, appointment.ID, got.ID)
	assert.Equal(t, "11:00", got.EndTime)

	// stranger
	_, err = svc.GetByID(ctx, appointment.ID, uuid.New(), false)
	assert.ErrorIs(t, err, ErrAccessDenied)

	// admin
	_, err = svc.GetByID(ctx, appointment.ID, uuid.New(), true)
	assert.NoError(t, err)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeAppointmentRepo(), &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	_, err := svc.GetByID(context.Background(), uuid.New(), uuid.New(), true)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestConfirm_NotifiesAndCreatesCalendarEvent(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	email := &fakeEmailClient{enabled: true}
	wa := &fakeWhatsAppClient{enabled: true}
	cal := &fakeCalendarClient{connected: true}
	svc := newService(repo, email, wa, cal)

	got, err := svc.Confirm(context.Background(), appointment.ID)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusConfirmed), got.Status)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus[appointment.ID])
	assert.Len(t, email.sent, 1)
	assert.Len(t, wa.sent, 1)
	require.Len(t, cal.inserted, 1)
	assert.Equal(t, "Massagem Relaxante - Ana Souza", cal.inserted[0].Summary)
	assert.Equal(t, ptr.Ptr("event-123"), repo.calendarEventSets[appointment.ID])
}

func TestConfirm_NotificationFailureDoesNotFailConfirmation(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	email := &fakeEmailClient{enabled: true, err: errors.New("resend is down")}
	cal := &fakeCalendarClient{connected: true, insertErr: errors.New("google is down")}
	svc := newService(repo, email, &fakeWhatsAppClient{}, cal)

	_, err := svc.Confirm(context.Background(), appointment.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, repo.updatedStatus[appointment.ID])
}

func TestConfirm_OnlyPending(t *testing.T) {
	appointment := pendingAppointment()
	appointment.Status = domain.StatusConfirmed
	svc := newService(newFakeAppointmentRepo(appointment), &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	_, err := svc.Confirm(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestCancel_ByOwner(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	err := svc.Cancel(context.Background(), appointment.ID, &models.CancelAppointmentRequest{
		RequesterID:        appointment.ClientID,
		CancellationReason: "imprevisto",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByClient, repo.cancelledBy)
	assert.Equal(t, "imprevisto", repo.cancelReason)
}

func TestCancel_ByAdminForAnotherClient(t *testing.T) {
	appointment := pendingAppointment()
	appointment.Status = domain.StatusConfirmed
	appointment.CalendarEventID = ptr.Ptr("event-123")
	repo := newFakeAppointmentRepo(appointment)
	cal := &fakeCalendarClient{connected: true}
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, cal)

	err := svc.Cancel(context.Background(), appointment.ID, &models.CancelAppointmentRequest{
		RequesterID: uuid.New(),
		IsAdmin:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.CancelledByStudio, repo.cancelledBy)
	assert.Equal(t, []string{"event-123"}, cal.deleted)
}

func TestCancel_StrangerDenied(t *testing.T) {
	appointment := pendingAppointment()
	svc := newService(newFakeAppointmentRepo(appointment), &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	err := svc.Cancel(context.Background(), appointment.ID, &models.CancelAppointmentRequest{
		RequesterID: uuid.New(),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_CompletedCannotBeCancelled(t *testing.T) {
	appointment := pendingAppointment()
	appointment.Status = domain.StatusCompleted
	svc := newService(newFakeAppointmentRepo(appointment), &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	err := svc.Cancel(context.Background(), appointment.ID, &models.CancelAppointmentRequest{
		RequesterID: appointment.ClientID,
	})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestComplete_OnlyConfirmed(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})
	ctx := context.Background()

	err := svc.Complete(ctx, appointment.ID)
	assert.ErrorIs(t, err, ErrCannotComplete)

	appointment.Status = domain.StatusConfirmed
	repo.appointments[appointment.ID] = appointment

	require.NoError(t, svc.Complete(ctx, appointment.ID))
	assert.Equal(t, domain.StatusCompleted, repo.updatedStatus[appointment.ID])
}

func TestRemind_SendsToConfirmedOnly(t *testing.T) {
	appointment := pendingAppointment()
	repo := newFakeAppointmentRepo(appointment)
	email := &fakeEmailClient{enabled: true}
	svc := newService(repo, email, &fakeWhatsAppClient{}, &fakeCalendarClient{})
	ctx := context.Background()

	err := svc.Remind(ctx, appointment.ID)
	assert.ErrorIs(t, err, ErrCannotRemind)

	appointment.Status = domain.StatusConfirmed
	require.NoError(t, svc.Remind(ctx, appointment.ID))
	require.Len(t, email.sent, 1)
	assert.Contains(t, email.sent[0], "Lembrete")
}

func TestRemind_NoChannelReported(t *testing.T) {
	appointment := pendingAppointment()
	appointment.Status = domain.StatusConfirmed
	repo := newFakeAppointmentRepo(appointment)
	// every channel disabled
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	err := svc.Remind(context.Background(), appointment.ID)
	assert.ErrorIs(t, err, ErrNoChannel)
}

func TestPurge_ReturnsDeletedCount(t *testing.T) {
	repo := newFakeAppointmentRepo(pendingAppointment(), pendingAppointment())
	svc := newService(repo, &fakeEmailClient{}, &fakeWhatsAppClient{}, &fakeCalendarClient{})

	deleted, err := svc.Purge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
}
