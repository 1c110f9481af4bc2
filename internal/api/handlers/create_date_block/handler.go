package create_date_block

import (
	"errors"
	"net/http"

	"github.com/touchedelumiere/TDL-BookingService/internal/api/handlers"
	"github.com/touchedelumiere/TDL-BookingService/internal/api/middleware"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule"
	"github.com/touchedelumiere/TDL-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "corpo da requisição inválido"
	msgInvalidBlock       = "dados do bloqueio inválidos"
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

// HandleCreate POST /api/v1/admin/schedule/date-blocks
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateDateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/schedule/date-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Record who created the block
	if req.CreatedBy == nil {
		if adminID, ok := middleware.GetUserID(r.Context()); ok {
			req.CreatedBy = &adminID
		}
	}

	result, err := h.service.CreateDateBlock(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /admin/schedule/date-blocks - Invalid block: %v", err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		default:
			h.logger.Error("POST /admin/schedule/date-blocks - Failed to create: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/schedule/date-blocks - Block created: block_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/schedule/date-blocks
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListDateBlocks(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/schedule/date-blocks - Failed to list: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
