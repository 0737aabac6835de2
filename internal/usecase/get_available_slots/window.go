package get_available_slots

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// resolvedWindow окно запроса после применения политики
type resolvedWindow struct {
	from     time.Time
	to       time.Time
	minFrom  time.Time // первая доступная дата
	limit    time.Time // граница горизонта записи
	maxWidth int
}

// resolveWindow применяет политику к окну из запроса
// 1. from по умолчанию - первая доступная дата, и не выходит за [minFrom, limit]
// 2. to по умолчанию - from + MaxWindowDays, и не дальше этой границы и горизонта
func resolveWindow(policy WindowPolicy, req *Request, now time.Time) (resolvedWindow, error) {
	loc := policy.Location
	if loc == nil {
		loc = time.UTC
	}

	today := domain.DateOf(domain.WallClock(now, loc))
	minFrom := today.AddDate(0, 0, policy.MinNoticeDays)
	limit := minFrom.AddDate(0, 0, policy.HorizonDays)

	from := minFrom
	if req.From != nil {
		from = *req.From
	}
	from = domain.MinTime(domain.MaxTime(from, minFrom), limit)

	maxTo := domain.MinTime(from.AddDate(0, 0, policy.MaxWindowDays), limit)
	to := maxTo
	if req.To != nil {
		to = domain.MinTime(*req.To, maxTo)
	}

	if to.Before(from) {
		return resolvedWindow{}, fmt.Errorf("%w: to=%s is before from=%s",
			ErrInvalidWindow, to.Format(time.RFC3339), from.Format(time.RFC3339))
	}

	return resolvedWindow{
		from:     from,
		to:       to,
		minFrom:  minFrom,
		limit:    limit,
		maxWidth: policy.MaxWindowDays,
	}, nil
}

func (w resolvedWindow) window() domain.Window {
	return domain.NewWindow(w.from, w.to)
}

// prevCursor начало предыдущего окна той же ширины
func (w resolvedWindow) prevCursor() *time.Time {
	if !w.from.After(w.minFrom) {
		return nil
	}
	prev := domain.MaxTime(w.from.AddDate(0, 0, -w.maxWidth), w.minFrom)
	return &prev
}

// nextCursor начало следующего окна
func (w resolvedWindow) nextCursor() *time.Time {
	if !w.to.Before(w.limit) {
		return nil
	}
	next := w.to
	return &next
}
