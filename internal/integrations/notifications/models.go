package notifications

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Routing keys событий
const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingRejected  = "booking.rejected"
)

// BookingEvent событие о бронировании, публикуется в topic exchange
type BookingEvent struct {
	Type       string    `json:"type"`
	BookingID  uuid.UUID `json:"bookingId"`
	AccountID  uuid.UUID `json:"accountId"`
	RuleID     uuid.UUID `json:"ruleId"`
	Date       string    `json:"date"`      // "2024-06-03"
	TimeStart  string    `json:"timeStart"` // "09:50"
	TimeEnd    string    `json:"timeEnd"`
	Notes      *string   `json:"notes,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`

	ServiceName  string `json:"serviceName,omitempty"`
	LocationName string `json:"locationName,omitempty"`
	OperatorName string `json:"operatorName,omitempty"`
}

// NewBookingEvent собирает событие из доменного бронирования
func NewBookingEvent(eventType string, b *domain.Booking, occurredAt time.Time) BookingEvent {
	return BookingEvent{
		Type:         eventType,
		BookingID:    b.ID,
		AccountID:    b.AccountID,
		RuleID:       b.RuleID,
		Date:         domain.FormatDate(b.Date),
		TimeStart:    b.TimeStart.String(),
		TimeEnd:      b.TimeEnd.String(),
		Notes:        b.Notes,
		OccurredAt:   occurredAt.UTC(),
		ServiceName:  b.ServiceName,
		LocationName: b.LocationName,
		OperatorName: b.OperatorName,
	}
}
