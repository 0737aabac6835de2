package slots

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const daysPerWeek = 7

// Expander разворачивает правило в конкретные слоты внутри окна
type Expander struct{}

// Expand возвращает все слоты-кандидаты правила для дат окна
// Фильтрация по границам окна и конфликтам выполняется отдельно
//
// Сетка слотов всегда строится от FromTime правила, а первая дата
// выравнивается на день недели правила. Поэтому границы слотов зависят
// только от правила и совпадают для любых окон, содержащих одну и ту же дату.
func (Expander) Expand(rule *domain.AvailabilityRule, window domain.Window) []domain.Slot {
	if rule.SlotDurationMinutes <= 0 {
		return nil
	}

	// Шаг 1: Ограничиваем диапазон дат правила датами окна
	start := domain.DateOf(rule.FromDate)
	end := domain.DateOf(rule.ToDate)
	if from := window.FromDate(); from != nil {
		start = domain.MaxTime(start, *from)
	}
	if to := window.ToDate(); to != nil {
		end = domain.MinTime(end, *to)
	}
	if start.After(end) {
		return nil
	}

	// Шаг 2: Сдвигаем начало на ближайший день недели правила
	shift := ((rule.Weekday-domain.IsoWeekday(start))%daysPerWeek + daysPerWeek) % daysPerWeek
	start = start.AddDate(0, 0, shift)

	// Шаг 3: Для каждой недели нарезаем день на слоты
	result := make([]domain.Slot, 0)
	for date := start; !date.After(end); date = date.AddDate(0, 0, daysPerWeek) {
		for _, bounds := range dayGrid(rule) {
			result = append(result, newSlot(rule, date, bounds[0], bounds[1]))
		}
	}

	return result
}

// dayGrid возвращает пары [начало, конец] слотов одного дня правила
// Слот не может выходить за ToTime и переходить через полночь
func dayGrid(rule *domain.AvailabilityRule) [][2]types.TimeString {
	grid := make([][2]types.TimeString, 0)
	cursor := rule.FromTime

	for cursor.IsBefore(rule.ToTime) {
		slotEnd, err := cursor.AddMinutes(rule.SlotDurationMinutes)
		if err != nil || slotEnd.IsAfter(rule.ToTime) {
			break
		}

		grid = append(grid, [2]types.TimeString{cursor, slotEnd})

		cursor, err = slotEnd.AddMinutes(rule.PauseMinutes)
		if err != nil {
			break
		}
	}

	return grid
}

// IsOnGrid проверяет, что start является началом одного из слотов правила
// и возвращает конец этого слота
func IsOnGrid(rule *domain.AvailabilityRule, start types.TimeString) (types.TimeString, bool) {
	for _, bounds := range dayGrid(rule) {
		if bounds[0] == start {
			return bounds[1], true
		}
	}
	return "", false
}

func newSlot(rule *domain.AvailabilityRule, date time.Time, start, end types.TimeString) domain.Slot {
	return domain.Slot{
		RuleID:          rule.ID,
		ServiceID:       rule.ServiceID,
		LocationID:      rule.LocationID,
		OperatorID:      rule.OperatorID,
		ServiceName:     rule.ServiceName,
		LocationName:    rule.LocationName,
		LocationAddress: rule.LocationAddress,
		LocationPhone:   rule.LocationPhone,
		OperatorName:    rule.OperatorName,
		Date:            date,
		TimeStart:       start,
		TimeEnd:         end,
	}
}
