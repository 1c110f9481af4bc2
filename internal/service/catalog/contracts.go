package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// CatalogRepository is the persistence surface for the service catalog
type CatalogRepository interface {
	Create(ctx context.Context, svc *domain.TherapyService) (*domain.TherapyService, error)
	Update(ctx context.Context, svc *domain.TherapyService) error
	Delete(ctx context.Context, id uuid.UUID) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.TherapyService, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.TherapyService, error)
}

// Logger is the logging surface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
