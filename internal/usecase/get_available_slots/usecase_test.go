package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	serviceID  = uuid.MustParse("0b6e6c1a-0000-4000-8000-000000000001")
	locationID = uuid.MustParse("0b6e6c1a-0000-4000-8000-000000000002")
	operatorID = uuid.MustParse("0b6e6c1a-0000-4000-8000-000000000003")
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeGenerator struct {
	result domain.ResultSet
	err    error
	query  slots.Query
}

func (f *fakeGenerator) Generate(_ context.Context, q slots.Query) (domain.ResultSet, error) {
	f.query = q
	return f.result, f.err
}

type fakeCatalog struct {
	serviceErr  error
	locations   []*domain.Location
	operators   []*domain.Operator
	listErr     error
	locationsBy *uuid.UUID
	operatorsBy *uuid.UUID
}

func (f *fakeCatalog) GetService(_ context.Context, id uuid.UUID) (*domain.Service, error) {
	if f.serviceErr != nil {
		return nil, f.serviceErr
	}
	return &domain.Service{ID: id, Name: "Консультация"}, nil
}

func (f *fakeCatalog) ListLocationsForService(_ context.Context, _ uuid.UUID, operatorID *uuid.UUID) ([]*domain.Location, error) {
	f.locationsBy = operatorID
	return f.locations, f.listErr
}

func (f *fakeCatalog) ListOperatorsForService(_ context.Context, _ uuid.UUID, locationID *uuid.UUID) ([]*domain.Operator, error) {
	f.operatorsBy = locationID
	return f.operators, f.listErr
}

type fakeMetrics struct {
	calls int
	slots int
}

func (f *fakeMetrics) ObserveSlotGeneration(slots int, _ time.Duration) {
	f.calls++
	f.slots = slots
}

func date(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func slot(day, start, end string) domain.Slot {
	return domain.Slot{
		ServiceID: serviceID,
		Date:      date(day),
		TimeStart: types.MustTimeString(start),
		TimeEnd:   types.MustTimeString(end),
	}
}

func newTestUseCase(now time.Time) (*UseCase, *fakeGenerator, *fakeCatalog, *fakeMetrics) {
	gen := &fakeGenerator{result: domain.ResultSet{}}
	cat := &fakeCatalog{}
	m := &fakeMetrics{}
	policy := WindowPolicy{MinNoticeDays: 1, HorizonDays: 365, MaxWindowDays: 31, Location: time.UTC}

	uc := NewUseCase(gen, cat, m, policy, logger.NewNop())
	uc.timeProvider = fixedTime{now: now}
	return uc, gen, cat, m
}

func TestUseCase_Execute_DefaultWindow(t *testing.T) {
	uc, gen, cat, m := newTestUseCase(time.Date(2024, 6, 2, 15, 30, 0, 0, time.UTC))
	gen.result = domain.ResultSet{
		"2024-06-10": {slot("2024-06-10", "09:00", "09:30")},
		"2024-06-03": {slot("2024-06-03", "09:00", "09:30"), slot("2024-06-03", "09:50", "10:20")},
	}
	cat.locations = []*domain.Location{{ID: locationID, Name: "Центральный офис"}}
	cat.operators = []*domain.Operator{{ID: operatorID, FirstName: "Anna", LastName: "Smirnova"}}

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID})
	require.NoError(t, err)

	// окно: с завтрашнего дня на 31 день
	assert.Equal(t, date("2024-06-03"), *gen.query.Window.From)
	assert.Equal(t, date("2024-07-04"), *gen.query.Window.To)
	assert.Equal(t, serviceID, *gen.query.ServiceID)
	assert.Equal(t, slots.DefaultOptions(), gen.query.Options)

	assert.Equal(t, []string{"2024-06-03", "2024-06-10"}, resp.DateList)
	require.NotNil(t, resp.PageDate)
	assert.Equal(t, "2024-06-03", *resp.PageDate)
	assert.Len(t, resp.Slots, 2)
	assert.Len(t, resp.Locations, 1)
	assert.Len(t, resp.Operators, 1)

	assert.Nil(t, resp.PrevCursor)
	require.NotNil(t, resp.NextCursor)
	assert.Equal(t, date("2024-07-04"), *resp.NextCursor)

	assert.Equal(t, 1, m.calls)
	assert.Equal(t, 3, m.slots)
}

func TestUseCase_Execute_PageDate(t *testing.T) {
	tests := []struct {
		name     string
		pageDate  *time.Time
		want      string
		wantSlots []domain.Slot
	}{
		{name: "дата со слотами", pageDate: ptr.Ptr(date("2024-06-10")), want: "2024-06-10", wantSlots: []domain.Slot{slot("2024-06-10", "14:00", "14:30")}},
		{name: "дата без слотов", pageDate: ptr.Ptr(date("2024-06-05")), want: "2024-06-05", wantSlots: []domain.Slot{}},
		{name: "без даты", pageDate: nil, want: "2024-06-03", wantSlots: []domain.Slot{slot("2024-06-03", "09:00", "09:30")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, gen, _, _ := newTestUseCase(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))
			gen.result = domain.ResultSet{
				"2024-06-03": {slot("2024-06-03", "09:00", "09:30")},
				"2024-06-10": {slot("2024-06-10", "14:00", "14:30")},
			}

			resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID, PageDate: tt.pageDate})
			require.NoError(t, err)
			require.NotNil(t, resp.PageDate)
			assert.Equal(t, tt.want, *resp.PageDate)
			assert.Equal(t, tt.wantSlots, resp.Slots)
			assert.Len(t, resp.DateList, 2)
		})
	}
}

func TestUseCase_Execute_EmptyResult(t *testing.T) {
	uc, _, _, _ := newTestUseCase(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{ServiceID: serviceID})
	require.NoError(t, err)
	assert.Empty(t, resp.DateList)
	assert.Nil(t, resp.PageDate)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_CrossFilters(t *testing.T) {
	uc, gen, cat, _ := newTestUseCase(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID:  serviceID,
		OperatorID: ptr.Ptr(operatorID),
		LocationID: ptr.Ptr(locationID),
	})
	require.NoError(t, err)

	assert.Equal(t, operatorID, *gen.query.OperatorID)
	assert.Equal(t, locationID, *gen.query.LocationID)
	assert.Equal(t, operatorID, *cat.locationsBy)
	assert.Equal(t, locationID, *cat.operatorsBy)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		setup   func(gen *fakeGenerator, cat *fakeCatalog)
		wantErr error
	}{
		{
			name:    "нет услуги в запросе",
			req:     &Request{},
			wantErr: ErrInvalidInput,
		},
		{
			name: "to раньше from",
			req: &Request{
				ServiceID: serviceID,
				From:      ptr.Ptr(date("2024-06-10")),
				To:        ptr.Ptr(date("2024-06-05")),
			},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "to раньше первой доступной даты",
			req:     &Request{ServiceID: serviceID, To: ptr.Ptr(date("2024-06-01"))},
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "услуга не найдена",
			req:     &Request{ServiceID: serviceID},
			setup:   func(_ *fakeGenerator, cat *fakeCatalog) { cat.serviceErr = catalogRepo.ErrServiceNotFound },
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "ошибка справочника",
			req:     &Request{ServiceID: serviceID},
			setup:   func(_ *fakeGenerator, cat *fakeCatalog) { cat.serviceErr = errors.New("db down") },
			wantErr: ErrInternal,
		},
		{
			name:    "ошибка генерации",
			req:     &Request{ServiceID: serviceID},
			setup:   func(gen *fakeGenerator, _ *fakeCatalog) { gen.err = slots.ErrFetchRules },
			wantErr: ErrInternal,
		},
		{
			name:    "ошибка списков",
			req:     &Request{ServiceID: serviceID},
			setup:   func(_ *fakeGenerator, cat *fakeCatalog) { cat.listErr = errors.New("db down") },
			wantErr: ErrInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, gen, cat, _ := newTestUseCase(time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))
			if tt.setup != nil {
				tt.setup(gen, cat)
			}

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
