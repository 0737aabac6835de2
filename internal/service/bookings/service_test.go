package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/bookings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

var (
	ownerID    = uuid.MustParse("c41f0e2d-0000-4000-8000-000000000001")
	strangerID = uuid.MustParse("c41f0e2d-0000-4000-8000-000000000002")
	bookingID  = uuid.MustParse("c41f0e2d-0000-4000-8000-000000000003")
)

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*domain.Booking
	getErr      error
	rejectErr   error
	listErr     error
	listAccount uuid.UUID
	listRejects bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uuid.UUID]*domain.Booking{
		bookingID: {
			ID:        bookingID,
			AccountID: ownerID,
			RuleID:    uuid.New(),
			Date:      time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			TimeStart: "09:50",
			TimeEnd:   "10:20",
		},
	}}
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) GetByAccountID(_ context.Context, accountID uuid.UUID, includeRejected bool) ([]*domain.Booking, error) {
	f.listAccount = accountID
	f.listRejects = includeRejected
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Booking
	for _, b := range f.bookings {
		if b.AccountID == accountID && (includeRejected || b.IsActive()) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) Reject(_ context.Context, id uuid.UUID) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	b := f.bookings[id]
	now := time.Date(2024, 6, 2, 12, 0, 0, 0, time.UTC)
	b.Rejected = true
	b.RejectedAt = &now
	return nil
}

type fakeNotifier struct {
	rejected []*domain.Booking
	err      error
}

func (f *fakeNotifier) PublishBookingRejected(_ context.Context, b *domain.Booking) error {
	f.rejected = append(f.rejected, b)
	return f.err
}

type fakeTxManager struct{ calls int }

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
}

func newTestService() (*Service, *fakeBookingRepo, *fakeNotifier, *fakeTxManager) {
	repo := newFakeBookingRepo()
	notifier := &fakeNotifier{}
	tx := &fakeTxManager{}
	return NewService(repo, notifier, tx, logger.NewNop()), repo, notifier, tx
}

func TestService_GetByID(t *testing.T) {
	tests := []struct {
		name      string
		id        uuid.UUID
		requester uuid.UUID
		getErr    error
		wantErr   error
	}{
		{name: "владелец", id: bookingID, requester: ownerID},
		{name: "чужое бронирование", id: bookingID, requester: strangerID, wantErr: ErrAccessDenied},
		{name: "не найдено", id: uuid.New(), requester: ownerID, wantErr: ErrBookingNotFound},
		{name: "ошибка репозитория", id: bookingID, requester: ownerID, getErr: bookingRepo.ErrExecQuery, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _, _ := newTestService()
			repo.getErr = tt.getErr

			resp, err := svc.GetByID(context.Background(), tt.id, tt.requester)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "2024-06-03", resp.Date)
			assert.Equal(t, "09:50", resp.TimeStart)
			assert.False(t, resp.Rejected)
		})
	}
}

func TestService_GetAccountBookings(t *testing.T) {
	svc, repo, _, _ := newTestService()

	resp, err := svc.GetAccountBookings(context.Background(), &models.GetAccountBookingsRequest{
		RequesterID:     ownerID,
		AccountID:       ownerID,
		IncludeRejected: true,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
	assert.Equal(t, ownerID, repo.listAccount)
	assert.True(t, repo.listRejects)

	_, err = svc.GetAccountBookings(context.Background(), &models.GetAccountBookingsRequest{
		RequesterID: strangerID,
		AccountID:   ownerID,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetAccountBookings(context.Background(), &models.GetAccountBookingsRequest{RequesterID: ownerID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.listErr = errors.New("db down")
	_, err = svc.GetAccountBookings(context.Background(), &models.GetAccountBookingsRequest{
		RequesterID: ownerID,
		AccountID:   ownerID,
	})
	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_GetAccountBookings_EmptyListIsNotNull(t *testing.T) {
	svc, _, _, _ := newTestService()

	resp, err := svc.GetAccountBookings(context.Background(), &models.GetAccountBookingsRequest{
		RequesterID: strangerID,
		AccountID:   strangerID,
	})
	require.NoError(t, err)
	assert.NotNil(t, resp.Bookings)
	assert.Empty(t, resp.Bookings)
}

func TestService_Reject(t *testing.T) {
	svc, repo, notifier, tx := newTestService()

	resp, err := svc.Reject(context.Background(), bookingID, ownerID)
	require.NoError(t, err)
	assert.True(t, resp.Rejected)
	require.NotNil(t, resp.RejectedAt)
	assert.Equal(t, "2024-06-02T12:00:00Z", *resp.RejectedAt)
	assert.True(t, repo.bookings[bookingID].Rejected)
	assert.Len(t, notifier.rejected, 1)
	assert.Equal(t, 1, tx.calls)

	// повторное отклонение
	_, err = svc.Reject(context.Background(), bookingID, ownerID)
	assert.ErrorIs(t, err, ErrAlreadyRejected)
	assert.Len(t, notifier.rejected, 1)
}

func TestService_Reject_Errors(t *testing.T) {
	tests := []struct {
		name      string
		id        uuid.UUID
		requester uuid.UUID
		rejectErr error
		wantErr   error
	}{
		{name: "чужое бронирование", id: bookingID, requester: strangerID, wantErr: ErrAccessDenied},
		{name: "не найдено", id: uuid.New(), requester: ownerID, wantErr: ErrBookingNotFound},
		{name: "гонка отклонений", id: bookingID, requester: ownerID, rejectErr: bookingRepo.ErrAlreadyRejected, wantErr: ErrAlreadyRejected},
		{name: "ошибка репозитория", id: bookingID, requester: ownerID, rejectErr: bookingRepo.ErrExecQuery, wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, notifier, _ := newTestService()
			repo.rejectErr = tt.rejectErr

			_, err := svc.Reject(context.Background(), tt.id, tt.requester)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, notifier.rejected)
		})
	}
}

func TestService_Reject_NotificationFailureIsIgnored(t *testing.T) {
	svc, _, notifier, _ := newTestService()
	notifier.err = errors.New("broker unavailable")

	resp, err := svc.Reject(context.Background(), bookingID, ownerID)
	require.NoError(t, err)
	assert.True(t, resp.Rejected)
}
