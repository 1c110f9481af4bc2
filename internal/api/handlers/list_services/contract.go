package list_services

import (
	"context"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context, lang string, onlyActive bool) (*models.ServiceListResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, lang string) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
