package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/touchedelumiere/TDL-BookingService/internal/domain"
	createAppointment "github.com/touchedelumiere/TDL-BookingService/internal/usecase/create_appointment"
	"github.com/touchedelumiere/TDL-BookingService/pkg/types"
)

// CreateAppointmentRequest is the HTTP request model. The client identity
// fields are denormalized onto the appointment for notifications and
// history.
type CreateAppointmentRequest struct {
	ServiceID       uuid.UUID `json:"serviceId"`
	AppointmentDate string    `json:"appointmentDate"` // "2025-10-15"
	StartTime       string    `json:"startTime"`       // "10:00"
	Notes           *string   `json:"notes,omitempty"`

	ClientName  string  `json:"clientName"`
	ClientEmail string  `json:"clientEmail"`
	ClientPhone *string `json:"clientPhone,omitempty"`
}

// AppointmentResponse is the HTTP response model
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	ClientID        uuid.UUID `json:"clientId"`
	ServiceID       uuid.UUID `json:"serviceId"`
	AppointmentDate string    `json:"appointmentDate"`
	StartTime       string    `json:"startTime"`
	DurationMinutes int       `json:"durationMinutes"`
	Status          string    `json:"status"`
	ServiceName     string    `json:"serviceName"`
	ServicePrice    float64   `json:"servicePrice"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	ClientPhone     *string   `json:"clientPhone,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       string    `json:"createdAt"`
	UpdatedAt       string    `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request, parsing date and time
func (r *CreateAppointmentRequest) ToUseCaseRequest(clientID uuid.UUID) (*createAppointment.Request, error) {
	appointmentDate, err := time.Parse(domain.DateFormat, r.AppointmentDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ClientID:    clientID,
		ServiceID:   r.ServiceID,
		Date:        appointmentDate,
		StartTime:   startTime,
		Notes:       r.Notes,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
	}, nil
}

// FromUseCaseResponse converts the usecase response to the HTTP model
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		ServiceID:       resp.ServiceID,
		AppointmentDate: resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
