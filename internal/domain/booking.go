package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Booking represents a booked slot
type Booking struct {
	ID        uuid.UUID
	AccountID uuid.UUID
	RuleID    uuid.UUID
	Date      time.Time
	TimeStart types.TimeString
	TimeEnd   types.TimeString
	Notes     *string

	Rejected   bool
	RejectedAt *time.Time

	// Denormalized display data (joined on read)
	ServiceName  string
	LocationName string
	OperatorName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return !b.Rejected
}

// CanBeRejected returns true if the booking can be rejected
func (b *Booking) CanBeRejected() bool {
	return !b.Rejected
}

// Key возвращает ключ точного совпадения со слотом
func (b *Booking) Key() BookingKey {
	return BookingKey{
		RuleID:    b.RuleID,
		Date:      FormatDate(b.Date),
		TimeStart: b.TimeStart,
		TimeEnd:   b.TimeEnd,
	}
}

// BookingKey идентифицирует слот правила на конкретную дату
type BookingKey struct {
	RuleID    uuid.UUID
	Date      string
	TimeStart types.TimeString
	TimeEnd   types.TimeString
}

// BookingFilter фильтр выборки активных бронирований
type BookingFilter struct {
	FromDate   *time.Time
	ToDate     *time.Time
	RuleID     *uuid.UUID
	ServiceID  *uuid.UUID
	OperatorID *uuid.UUID
	LocationID *uuid.UUID
}
