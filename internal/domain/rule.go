package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AvailabilityRule еженедельное правило доступности:
// оператор принимает услугу в локации в один день недели с FromTime до ToTime
type AvailabilityRule struct {
	ID         uuid.UUID
	ServiceID  uuid.UUID
	LocationID uuid.UUID
	OperatorID uuid.UUID

	FromDate time.Time // включительно
	ToDate   time.Time // включительно
	FromTime types.TimeString
	ToTime   types.TimeString
	Weekday  int // 0 = понедельник ... 6 = воскресенье

	SlotDurationMinutes int
	PauseMinutes        int
	Enabled             bool

	// Denormalized display data (joined on read)
	ServiceName     string
	LocationName    string
	LocationAddress string
	LocationPhone   string
	OperatorName    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate проверяет инварианты правила
func (r *AvailabilityRule) Validate() error {
	if r.FromDate.After(r.ToDate) {
		return fmt.Errorf("%w: available_from_date is after available_to_date", ErrInvalidRule)
	}

	if err := r.FromTime.Validate(); err != nil {
		return fmt.Errorf("%w: available_from_time: %v", ErrInvalidRule, err)
	}
	if err := r.ToTime.Validate(); err != nil {
		return fmt.Errorf("%w: available_to_time: %v", ErrInvalidRule, err)
	}
	if !r.FromTime.IsBefore(r.ToTime) {
		return fmt.Errorf("%w: available_from_time must be before available_to_time", ErrInvalidRule)
	}

	if r.Weekday < MinWeekday || r.Weekday > MaxWeekday {
		return fmt.Errorf("%w: weekday must be in [%d, %d]", ErrInvalidRule, MinWeekday, MaxWeekday)
	}

	if r.SlotDurationMinutes < MinSlotDurationMinutes || r.SlotDurationMinutes > MaxSlotDurationMinutes {
		return fmt.Errorf("%w: slot duration must be in [%d, %d] minutes",
			ErrInvalidRule, MinSlotDurationMinutes, MaxSlotDurationMinutes)
	}

	if r.PauseMinutes < MinPauseMinutes || r.PauseMinutes > MaxPauseMinutes {
		return fmt.Errorf("%w: pause must be in [%d, %d] minutes", ErrInvalidRule, MinPauseMinutes, MaxPauseMinutes)
	}

	return nil
}

// OverlapsDates возвращает true, если диапазон дат правила пересекается с [from, to]
// Незаданная граница не ограничивает
func (r *AvailabilityRule) OverlapsDates(from, to *time.Time) bool {
	if from != nil && DateOf(r.ToDate).Before(DateOf(*from)) {
		return false
	}
	if to != nil && DateOf(r.FromDate).After(DateOf(*to)) {
		return false
	}
	return true
}

// RuleFilter фильтр выборки правил
type RuleFilter struct {
	ServiceID  *uuid.UUID
	OperatorID *uuid.UUID
	LocationID *uuid.UUID
	RuleID     *uuid.UUID
	FromDate   *time.Time // правило должно заканчиваться не раньше этой даты
	ToDate     *time.Time // правило должно начинаться не позже этой даты
}
