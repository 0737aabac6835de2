package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Slot represents one concrete bookable interval produced by a rule
type Slot struct {
	RuleID     uuid.UUID
	ServiceID  uuid.UUID
	LocationID uuid.UUID
	OperatorID uuid.UUID

	ServiceName     string
	LocationName    string
	LocationAddress string
	LocationPhone   string
	OperatorName    string

	Date      time.Time
	TimeStart types.TimeString
	TimeEnd   types.TimeString
}

// StartAt returns the absolute start of the slot
func (s *Slot) StartAt() time.Time {
	return CombineDateTime(s.Date, s.TimeStart)
}

// EndAt returns the absolute end of the slot
func (s *Slot) EndAt() time.Time {
	return CombineDateTime(s.Date, s.TimeEnd)
}

// DateKey returns the ISO date used to group slots
func (s *Slot) DateKey() string {
	return FormatDate(s.Date)
}

// Key returns the exact-match key against bookings
func (s *Slot) Key() BookingKey {
	return BookingKey{
		RuleID:    s.RuleID,
		Date:      s.DateKey(),
		TimeStart: s.TimeStart,
		TimeEnd:   s.TimeEnd,
	}
}

// ResultSet слоты, сгруппированные по ISO-дате
// Внутри даты порядок совпадает с порядком генерации
type ResultSet map[string][]Slot

// Dates возвращает даты в лексикографическом порядке (для ISO совпадает с хронологическим)
func (rs ResultSet) Dates() []string {
	dates := make([]string, 0, len(rs))
	for date := range rs {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}

// Count возвращает общее количество слотов
func (rs ResultSet) Count() int {
	total := 0
	for _, slots := range rs {
		total += len(slots)
	}
	return total
}
