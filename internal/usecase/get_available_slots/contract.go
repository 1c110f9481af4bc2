package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// AppointmentRepository is the appointment read surface the usecase needs
type AppointmentRepository interface {
	GetWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// CatalogRepository resolves the requested service and its duration
type CatalogRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyService, error)
}

// ScheduleProvider serves the operating hours and date blocks, degrading
// to a stale snapshot when the database is unreachable
type ScheduleProvider interface {
	LoadForAvailability(ctx context.Context) (hours []domain.OperatingHoursRule, blocks []domain.DateBlock, stale bool)
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
