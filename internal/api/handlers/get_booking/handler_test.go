package get_booking

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct {
	err         error
	requesterID uuid.UUID
}

func (f *fakeService) GetByID(_ context.Context, id uuid.UUID, requesterID uuid.UUID) (*models.BookingResponse, error) {
	f.requesterID = requesterID
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingResponse{ID: id, AccountID: requesterID, Date: "2024-06-03", TimeStart: "09:50"}, nil
}

func serve(h *Handler, bookingID string, userID *uuid.UUID) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/bookings/{bookingId}", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/"+bookingID, nil)
	if userID != nil {
		req = req.WithContext(middleware.WithUserID(req.Context(), *userID))
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	svc := &fakeService{}
	userID := uuid.New()
	bookingID := uuid.New()

	rec := serve(NewHandler(svc, logger.NewNop()), bookingID.String(), &userID)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, svc.requesterID)

	var body models.BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, bookingID, body.ID)
}

func TestHandler_Handle_Errors(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name       string
		bookingID  string
		userID     *uuid.UUID
		svcErr     error
		wantStatus int
	}{
		{name: "невалидный id", bookingID: "7", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "без пользователя", bookingID: uuid.NewString(), wantStatus: http.StatusUnauthorized},
		{name: "не найдено", bookingID: uuid.NewString(), userID: &userID, svcErr: bookings.ErrBookingNotFound, wantStatus: http.StatusNotFound},
		{name: "чужое", bookingID: uuid.NewString(), userID: &userID, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "внутренняя", bookingID: uuid.NewString(), userID: &userID, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.svcErr}, logger.NewNop()), tt.bookingID, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
