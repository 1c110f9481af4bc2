package update_operating_hours

import (
	"errors"
	"net/http"

	"github.com/touchedelumiere/TDL-BookingService/internal/api/handlers"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidRules       = "regras de horário inválidas"
	msgMissingRules       = "pelo menos uma regra de horário é obrigatória"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/schedule/operating-hours
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOperatingHoursRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/schedule/operating-hours - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if len(req.Rules) == 0 {
		h.logger.Warn("PUT /admin/schedule/operating-hours - Empty rules")
		handlers.RespondBadRequest(w, msgMissingRules)
		return
	}

	result, err := h.service.UpdateOperatingHours(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /admin/schedule/operating-hours - Invalid rules: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRules)

		default:
			h.logger.Error("PUT /admin/schedule/operating-hours - Failed to update: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/schedule/operating-hours - Rules updated")
	handlers.RespondJSON(w, http.StatusOK, result)
}
