package get_account_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
)

const (
	msgInvalidAccountID = "некорректный ID аккаунта"
	msgInvalidFlag      = "параметр includeRejected должен быть true или false"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/accounts/{accountId}/bookings
// Query params: includeRejected (опционально, по умолчанию false)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	accountID, err := uuid.Parse(mux.Vars(r)["accountId"])
	if err != nil {
		h.logger.Warn("GET /accounts/{id}/bookings - Invalid account ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAccountID)
		return
	}

	includeRejected := false
	if s := r.URL.Query().Get("includeRejected"); s != "" {
		if includeRejected, err = strconv.ParseBool(s); err != nil {
			h.logger.Warn("GET /accounts/{id}/bookings - Invalid includeRejected: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFlag)
			return
		}
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /accounts/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetAccountBookings(r.Context(), &models.GetAccountBookingsRequest{
		RequesterID:     userID,
		AccountID:       accountID,
		IncludeRejected: includeRejected,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /accounts/{id}/bookings - Access denied: account_id=%s, user_id=%s", accountID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /accounts/{id}/bookings - Failed to get bookings: account_id=%s, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /accounts/{id}/bookings - Bookings retrieved successfully: account_id=%s, count=%d",
		accountID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
