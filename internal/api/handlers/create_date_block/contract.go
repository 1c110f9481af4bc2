package create_date_block

import (
	"context"

	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	CreateDateBlock(ctx context.Context, req *models.CreateDateBlockRequest) (*models.DateBlockResponse, error)
	ListDateBlocks(ctx context.Context) ([]models.DateBlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
