package create_closure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/schedule/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type fakeService struct{ err error }

func (f *fakeService) CreateClosure(_ context.Context, req *models.CreateClosureRequest) (*models.IntervalResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.IntervalResponse{ID: uuid.New(), Kind: "closure", StartAt: req.StartAt, EndAt: req.EndAt}, nil
}

func TestHandler_Handle(t *testing.T) {
	valid := `{"locationId":"` + uuid.NewString() + `","startAt":"2024-06-03T10:00:00","endAt":"2024-06-03T12:00:00"}`

	tests := []struct {
		name       string
		body       string
		svcErr     error
		wantStatus int
	}{
		{name: "создано", body: valid, wantStatus: http.StatusCreated},
		{name: "битое тело", body: `[]`, wantStatus: http.StatusBadRequest},
		{name: "пустой интервал", body: valid, svcErr: schedule.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "не найдено", body: valid, svcErr: schedule.ErrReferenceNotFound, wantStatus: http.StatusNotFound},
		{name: "внутренняя", body: valid, svcErr: errors.New("boom"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/closures", strings.NewReader(tt.body))
			NewHandler(&fakeService{err: tt.svcErr}, logger.NewNop()).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
