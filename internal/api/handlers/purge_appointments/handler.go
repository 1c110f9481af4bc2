package purge_appointments

import (
	"net/http"

	"github.com/touchedelumiere/TDL-BookingService/internal/api/handlers"
)

type purgeResponse struct {
	Deleted int64 `json:"deleted"`
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

// Handle DELETE /api/v1/admin/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.service.Purge(r.Context())
	if err != nil {
		h.logger.Error("DELETE /admin/appointments - Failed to purge: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Warn("DELETE /admin/appointments - Purged %d appointments", deleted)
	handlers.RespondJSON(w, http.StatusOK, purgeResponse{Deleted: deleted})
}
