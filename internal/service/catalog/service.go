package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	catalogRepo "github.com/touchedelumiere/TDL-BookingService/internal/infra/storage/servicecatalog"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/catalog/models"
)

// Service manages the studio's treatment catalog
type Service struct {
	catalogRepo CatalogRepository
	logger      Logger
}

// NewService creates a catalog service
func NewService(catalogRepo CatalogRepository, logger Logger) *Service {
	return &Service{
		catalogRepo: catalogRepo,
		logger:      logger,
	}
}

// List returns catalog entries localized for lang. Public callers get only
// active entries, the admin editor gets everything.
func (s *Service) List(ctx context.Context, lang string, onlyActive bool) (*models.ServiceListResponse, error) {
	s.logger.Info("List: fetching services, lang=%s, onlyActive=%t", lang, onlyActive)

	services, err := s.catalogRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services, lang), nil
}

// GetByID fetches one catalog entry localized for lang
func (s *Service) GetByID(ctx context.Context, id uuid.UUID, lang string) (*models.ServiceResponse, error) {
	s.logger.Info("GetByID: fetching service id=%s, lang=%s", id, lang)

	svc, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("GetByID: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetByID: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(svc, lang), nil
}

// Create adds a catalog entry
func (s *Service) Create(ctx context.Context, req *models.SaveServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q", req.NamePT)

	if err := s.validate(req); err != nil {
		s.logger.Warn("Create: validation failed for name=%q: %v", req.NamePT, err)
		return nil, err
	}

	created, err := s.catalogRepo.Create(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("Create: repository error for name=%q: %v", req.NamePT, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service created, id=%s", created.ID)
	return models.FromDomainService(created, "pt"), nil
}

// Update rewrites a catalog entry
func (s *Service) Update(ctx context.Context, id uuid.UUID, req *models.SaveServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%s", id)

	if err := s.validate(req); err != nil {
		s.logger.Warn("Update: validation failed for service id=%s: %v", id, err)
		return nil, err
	}

	svc := req.ToDomain()
	svc.ID = id

	if err := s.catalogRepo.Update(ctx, svc); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%s not found", id)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Update: repository error for service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	updated, err := s.catalogRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service id=%s updated", id)
	return models.FromDomainService(updated, "pt"), nil
}

// Delete removes a catalog entry
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("Delete: deleting service id=%s", id)

	if err := s.catalogRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%s not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: service id=%s deleted", id)
	return nil
}

func (s *Service) validate(req *models.SaveServiceRequest) error {
	if strings.TrimSpace(req.NamePT) == "" {
		return fmt.Errorf("%w: namePt is required", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}
