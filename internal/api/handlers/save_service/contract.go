package save_service

import (
	"context"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, req *models.SaveServiceRequest) (*models.ServiceResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *models.SaveServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
