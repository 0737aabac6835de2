package slots

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

var (
	serviceID  = uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000001")
	locationID = uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000002")
	operatorID = uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000003")
	ruleID     = uuid.MustParse("6f1c2a4e-0000-4000-8000-000000000004")
)

func mustDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(date, hm string) time.Time {
	return domain.CombineDateTime(mustDate(date), types.MustTimeString(hm))
}

func window(from, to time.Time) domain.Window {
	return domain.NewWindow(from, to)
}

// mondayRule правило по понедельникам июня 2024: 09:00-12:00, слот 30 минут, пауза 20
func mondayRule() *domain.AvailabilityRule {
	return &domain.AvailabilityRule{
		ID:                  ruleID,
		ServiceID:           serviceID,
		LocationID:          locationID,
		OperatorID:          operatorID,
		FromDate:            mustDate("2024-06-01"),
		ToDate:              mustDate("2024-06-30"),
		FromTime:            "09:00",
		ToTime:              "12:00",
		Weekday:             0,
		SlotDurationMinutes: 30,
		PauseMinutes:        20,
		Enabled:             true,
		ServiceName:         "Консультация",
		LocationName:        "Центральный офис",
		OperatorName:        "Dr. Anna Smirnova",
	}
}

func starts(slots []domain.Slot) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.TimeStart.String() + "-" + s.TimeEnd.String()
	}
	return out
}

type fakeRuleRepo struct {
	rules  []*domain.AvailabilityRule
	err    error
	filter domain.RuleFilter
	calls  int
}

func (f *fakeRuleRepo) FindEnabled(_ context.Context, filter domain.RuleFilter) ([]*domain.AvailabilityRule, error) {
	f.calls++
	f.filter = filter
	return f.rules, f.err
}

type fakeConflictRepo struct {
	intervals []*domain.ConflictInterval
	err       error
	scopeID   *uuid.UUID
	calls     int
}

func (f *fakeConflictRepo) FindOverlapping(_ context.Context, _ domain.Window, scopeID *uuid.UUID) ([]*domain.ConflictInterval, error) {
	f.calls++
	f.scopeID = scopeID
	return f.intervals, f.err
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
	filter   domain.BookingFilter
	calls    int
}

func (f *fakeBookingRepo) FindActive(_ context.Context, filter domain.BookingFilter) ([]*domain.Booking, error) {
	f.calls++
	f.filter = filter
	return f.bookings, f.err
}

var errDB = errors.New("connection reset")
