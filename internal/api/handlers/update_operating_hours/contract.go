package update_operating_hours

import (
	"context"

	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	UpdateOperatingHours(ctx context.Context, req *models.UpdateOperatingHoursRequest) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
