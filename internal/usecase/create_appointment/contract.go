package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// AppointmentRepository is the appointment persistence surface the
// usecase needs. GetWithFilter locks the date's rows (FOR UPDATE) when
// called inside a transaction.
type AppointmentRepository interface {
	Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error)
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository resolves the requested service
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyService, error)
}

// ScheduleRepository loads the schedule rule sets. The write path reads
// them strictly: unlike the availability page there is no fail-open here.
type ScheduleRepository interface {
	GetOperatingHours(ctx context.Context) ([]domain.OperatingHoursRule, error)
	ListDateBlocks(ctx context.Context, from time.Time) ([]domain.DateBlock, error)
}

// TransactionManager runs the availability re-check and insert atomically
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider abstracts the current time for testing
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging surface the usecase needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
