package create_booking

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.AccountID == uuid.Nil {
		return fmt.Errorf("%w: accountID is required", ErrInvalidInput)
	}

	if req.RuleID == uuid.Nil {
		return fmt.Errorf("%w: ruleID is required", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	return nil
}

// validateDate проверяет, что дата попадает в горизонт записи [today + MinNoticeDays, + HorizonDays)
func validateDate(bookingDate time.Time, now time.Time, policy Policy) error {
	loc := policy.Location
	if loc == nil {
		loc = time.UTC
	}

	today := domain.DateOf(domain.WallClock(now, loc))
	minDate := today.AddDate(0, 0, policy.MinNoticeDays)
	limit := minDate.AddDate(0, 0, policy.HorizonDays)
	date := domain.DateOf(bookingDate)

	if date.Before(minDate) {
		return fmt.Errorf("%w: earliest bookable date is %s", ErrInvalidDate, domain.FormatDate(minDate))
	}

	if !date.Before(limit) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, policy.HorizonDays)
	}

	return nil
}

// validateRuleDate проверяет, что правило действует в эту дату и в этот день недели
func validateRuleDate(rule *domain.AvailabilityRule, date time.Time) error {
	if domain.IsoWeekday(date) != rule.Weekday {
		return fmt.Errorf("%w: rule works on weekday %d, got %d", ErrInvalidTimeSlot, rule.Weekday, domain.IsoWeekday(date))
	}

	if !rule.OverlapsDates(&date, &date) {
		return fmt.Errorf("%w: date %s is outside rule dates", ErrInvalidTimeSlot, domain.FormatDate(date))
	}

	return nil
}
