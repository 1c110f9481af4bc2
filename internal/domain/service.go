package domain

import (
	"time"

	"github.com/google/uuid"
)

// TherapyService represents a bookable treatment from the studio catalog
type TherapyService struct {
	ID     uuid.UUID
	NamePT string // canonical name, Portuguese
	NameEN *string
	NameFR *string

	DescriptionPT *string
	DescriptionEN *string
	DescriptionFR *string

	DurationMinutes int
	Price           float64
	Active          bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocalizedName returns the service name for lang ("pt", "en", "fr"),
// falling back to the Portuguese canonical name.
func (s *TherapyService) LocalizedName(lang string) string {
	switch lang {
	case "en":
		if s.NameEN != nil && *s.NameEN != "" {
			return *s.NameEN
		}
	case "fr":
		if s.NameFR != nil && *s.NameFR != "" {
			return *s.NameFR
		}
	}
	return s.NamePT
}

// LocalizedDescription returns the description for lang with the same
// fallback rule as LocalizedName.
func (s *TherapyService) LocalizedDescription(lang string) *string {
	switch lang {
	case "en":
		if s.DescriptionEN != nil {
			return s.DescriptionEN
		}
	case "fr":
		if s.DescriptionFR != nil {
			return s.DescriptionFR
		}
	}
	return s.DescriptionPT
}
