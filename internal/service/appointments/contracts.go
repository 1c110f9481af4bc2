package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	"github.com/touchedelumiere/TDL-BookingService/internal/integrations/googlecalendar"
)

// AppointmentRepository is the persistence surface for appointments
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByClientID(ctx context.Context, clientID uuid.UUID, status *domain.AppointmentStatus) ([]*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.AppointmentStatus) error
	Cancel(ctx context.Context, id uuid.UUID, cancelledBy string, reason string) error
	SetCalendarEventID(ctx context.Context, id uuid.UUID, eventID *string) error
	DeleteAll(ctx context.Context) (int64, error)
}

// EmailClient sends transactional email
type EmailClient interface {
	Enabled() bool
	SendEmail(ctx context.Context, to, subject, html string) (string, error)
}

// WhatsAppClient sends WhatsApp text messages
type WhatsAppClient interface {
	Enabled() bool
	SendText(ctx context.Context, to, body string) (string, error)
}

// CalendarClient mirrors appointments onto the studio calendar
type CalendarClient interface {
	Connected(ctx context.Context) bool
	InsertEvent(ctx context.Context, event *googlecalendar.Event) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
