package schedule

import (
	"context"
	"time"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// ScheduleRepository is the persistence surface for hours and blocks
type ScheduleRepository interface {
	GetOperatingHours(ctx context.Context) ([]domain.OperatingHoursRule, error)
	UpsertOperatingHours(ctx context.Context, rules []domain.OperatingHoursRule) error
	CreateDateBlock(ctx context.Context, block *domain.DateBlock) (*domain.DateBlock, error)
	ListDateBlocks(ctx context.Context, from time.Time) ([]domain.DateBlock, error)
	DeleteDateBlock(ctx context.Context, id int64) error
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
