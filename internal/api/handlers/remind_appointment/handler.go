package remind_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/touchedelumiere/TDL-BookingService/internal/api/handlers"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "ID de agendamento inválido"
	msgAppointmentNotFound  = "agendamento não encontrado"
	msgCannotRemind         = "apenas agendamentos confirmados recebem lembrete"
	msgNoChannel            = "nenhum canal de notificação disponível para este cliente"
	msgReminderSent         = "lembrete enviado com sucesso"
)

type remindResponse struct {
	Message string `json:"message"`
}

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/{appointmentId}/remind
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["appointmentId"])
	if err != nil {
		h.logger.Warn("POST /admin/appointments/{id}/remind - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.Remind(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /admin/appointments/{id}/remind - Not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgAppointmentNotFound)

		case errors.Is(err, appointments.ErrCannotRemind):
			h.logger.Warn("POST /admin/appointments/{id}/remind - Not confirmed: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusConflict, msgCannotRemind)

		case errors.Is(err, appointments.ErrNoChannel):
			h.logger.Warn("POST /admin/appointments/{id}/remind - No channel: appointment_id=%s", appointmentID)
			handlers.RespondError(w, http.StatusBadGateway, msgNoChannel)

		default:
			h.logger.Error("POST /admin/appointments/{id}/remind - Failed to remind: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/appointments/{id}/remind - Reminder sent: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, remindResponse{Message: msgReminderSent})
}
