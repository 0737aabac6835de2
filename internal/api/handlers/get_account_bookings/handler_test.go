package get_account_bookings

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
	err error
	req *models.GetAccountBookingsRequest
}

func (f *fakeService) GetAccountBookings(_ context.Context, req *models.GetAccountBookingsRequest) (*models.BookingListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.BookingListResponse{Bookings: []models.BookingResponse{}}, nil
}

func serve(h *Handler, target string, userID *uuid.UUID) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/accounts/{accountId}/bookings", h.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
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

	rec := serve(NewHandler(svc, logger.NewNop()), "/api/v1/accounts/"+userID.String()+"/bookings?includeRejected=true", &userID)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, userID, svc.req.AccountID)
	assert.Equal(t, userID, svc.req.RequesterID)
	assert.True(t, svc.req.IncludeRejected)
	assert.JSONEq(t, `{"bookings":[]}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	userID := uuid.New()
	path := "/api/v1/accounts/" + userID.String() + "/bookings"

	tests := []struct {
		name       string
		target     string
		userID     *uuid.UUID
		svcErr     error
		wantStatus int
	}{
		{name: "невалидный id", target: "/api/v1/accounts/1/bookings", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "невалидный флаг", target: path + "?includeRejected=maybe", userID: &userID, wantStatus: http.StatusBadRequest},
		{name: "без пользователя", target: path, wantStatus: http.StatusUnauthorized},
		{name: "чужой аккаунт", target: path, userID: &userID, svcErr: bookings.ErrAccessDenied, wantStatus: http.StatusForbidden},
		{name: "внутренняя", target: path, userID: &userID, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(NewHandler(&fakeService{err: tt.svcErr}, logger.NewNop()), tt.target, tt.userID)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestHandler_Handle_ResponseShape(t *testing.T) {
	userID := uuid.New()
	rec := serve(NewHandler(&fakeService{}, logger.NewNop()), "/api/v1/accounts/"+userID.String()+"/bookings", &userID)

	var body models.BookingListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotNil(t, body.Bookings)
}
