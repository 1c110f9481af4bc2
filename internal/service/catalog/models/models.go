package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
)

// Request models

// SaveServiceRequest creates or rewrites a catalog entry
type SaveServiceRequest struct {
	NamePT string  `json:"namePt"`
	NameEN *string `json:"nameEn,omitempty"`
	NameFR *string `json:"nameFr,omitempty"`

	DescriptionPT *string `json:"descriptionPt,omitempty"`
	DescriptionEN *string `json:"descriptionEn,omitempty"`
	DescriptionFR *string `json:"descriptionFr,omitempty"`

	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`
}

// ToDomain converts the request to the domain model
func (r *SaveServiceRequest) ToDomain() *domain.TherapyService {
	return &domain.TherapyService{
		NamePT:          r.NamePT,
		NameEN:          r.NameEN,
		NameFR:          r.NameFR,
		DescriptionPT:   r.DescriptionPT,
		DescriptionEN:   r.DescriptionEN,
		DescriptionFR:   r.DescriptionFR,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		Active:          r.Active,
	}
}

// Response models

// ServiceResponse is the catalog entry DTO. Name and Description carry the
// localized values for the requested language; the *PT/EN/FR fields expose
// every translation for the admin editor.
type ServiceResponse struct {
	ID uuid.UUID `json:"id"`

	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`

	NamePT        string  `json:"namePt"`
	NameEN        *string `json:"nameEn,omitempty"`
	NameFR        *string `json:"nameFr,omitempty"`
	DescriptionPT *string `json:"descriptionPt,omitempty"`
	DescriptionEN *string `json:"descriptionEn,omitempty"`
	DescriptionFR *string `json:"descriptionFr,omitempty"`

	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	Active          bool    `json:"active"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse wraps a list of catalog entries
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// FromDomainService converts the domain model to a DTO localized for lang
func FromDomainService(s *domain.TherapyService, lang string) *ServiceResponse {
	if s == nil {
		return nil
	}

	return &ServiceResponse{
		ID:              s.ID,
		Name:            s.LocalizedName(lang),
		Description:     s.LocalizedDescription(lang),
		NamePT:          s.NamePT,
		NameEN:          s.NameEN,
		NameFR:          s.NameFR,
		DescriptionPT:   s.DescriptionPT,
		DescriptionEN:   s.DescriptionEN,
		DescriptionFR:   s.DescriptionFR,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList converts a slice of domain models to a list DTO
func FromDomainServiceList(services []*domain.TherapyService, lang string) *ServiceListResponse {
	result := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}

	for _, s := range services {
		if resp := FromDomainService(s, lang); resp != nil {
			result.Services = append(result.Services, *resp)
		}
	}

	return result
}
