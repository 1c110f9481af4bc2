package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	getAvailableSlots "github.com/touchedelumiere/TDL-BookingService/internal/usecase/get_available_slots"
)

// SlotResponse is one grid position
type SlotResponse struct {
	StartTime string `json:"startTime"` // "10:00"
	Available bool   `json:"available"`
}

// AvailableSlotsResponse is the HTTP response model
type AvailableSlotsResponse struct {
	Date            string         `json:"date"`
	ServiceID       uuid.UUID      `json:"serviceId"`
	DurationMinutes int            `json:"durationMinutes"`
	Stale           bool           `json:"stale,omitempty"`
	Slots           []SlotResponse `json:"slots"`
}

// ToUseCaseRequest builds the usecase request from the parsed URL parts
func ToUseCaseRequest(serviceID uuid.UUID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse converts the usecase response to the HTTP model
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, slot := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		})
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.Format(domain.DateFormat),
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Stale:           resp.Stale,
		Slots:           slots,
	}
}
