package confirm_appointment

import (
	"context"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	Confirm(ctx context.Context, id uuid.UUID) (*models.AppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
