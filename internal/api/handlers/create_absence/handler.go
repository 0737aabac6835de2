package create_absence

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInterval    = "некорректный интервал: ожидается startAt < endAt в формате YYYY-MM-DDTHH:MM:SS"
	msgOperatorNotFound   = "оператор не найден"
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

// Handle POST /api/v1/absences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAbsenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /absences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateAbsence(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("POST /absences - Invalid interval: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		case errors.Is(err, schedule.ErrReferenceNotFound):
			h.logger.Warn("POST /absences - Operator not found: operator_id=%s", req.OperatorID)
			handlers.RespondNotFound(w, msgOperatorNotFound)

		default:
			h.logger.Error("POST /absences - Failed to create absence: operator_id=%s, error=%v", req.OperatorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /absences - Absence created successfully: absence_id=%s, operator_id=%s", result.ID, req.OperatorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
