package slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// ExclusionReason причина отбрасывания слота
type ExclusionReason string

const (
	ReasonNone    ExclusionReason = ""
	ReasonWindow  ExclusionReason = "window"
	ReasonBooking ExclusionReason = "booking"
	ReasonClosure ExclusionReason = "closure"
	ReasonAbsence ExclusionReason = "absence"
)

// ConflictFilter решает, оставить ли слот-кандидат
// Слот отбрасывается, если сработало хотя бы одно включённое условие
type ConflictFilter struct {
	window domain.Window

	closures map[uuid.UUID][]*domain.ConflictInterval // по локации
	absences map[uuid.UUID][]*domain.ConflictInterval // по оператору
	booked   map[domain.BookingKey]struct{}
}

// NewConflictFilter индексирует снимок по ключам проверки
// Выключенная проверка или отсутствующий источник дают пустой индекс
func NewConflictFilter(window domain.Window, snapshot Snapshot, opts Options) *ConflictFilter {
	f := &ConflictFilter{window: window}

	if opts.ExcludeClosures && snapshot.Closures != nil {
		f.closures = groupByScope(snapshot.Closures)
	}
	if opts.ExcludeAbsences && snapshot.Absences != nil {
		f.absences = groupByScope(snapshot.Absences)
	}
	if opts.ExcludeBookings && snapshot.Bookings != nil {
		f.booked = make(map[domain.BookingKey]struct{}, len(snapshot.Bookings))
		for _, b := range snapshot.Bookings {
			if b.IsActive() {
				f.booked[b.Key()] = struct{}{}
			}
		}
	}

	return f
}

// Check возвращает причину исключения или ReasonNone, если слот доступен
func (f *ConflictFilter) Check(slot *domain.Slot) ExclusionReason {
	start, end := slot.StartAt(), slot.EndAt()

	if !f.window.Contains(start, end) {
		return ReasonWindow
	}

	// Точное совпадение: сетка правила каноническая, поэтому пересечения не нужны
	if _, ok := f.booked[slot.Key()]; ok {
		return ReasonBooking
	}

	if overlapsAny(f.closures[slot.LocationID], start, end) {
		return ReasonClosure
	}

	if overlapsAny(f.absences[slot.OperatorID], start, end) {
		return ReasonAbsence
	}

	return ReasonNone
}

// Accept возвращает true, если слот не конфликтует ни с чем
func (f *ConflictFilter) Accept(slot *domain.Slot) bool {
	return f.Check(slot) == ReasonNone
}

func groupByScope(intervals []*domain.ConflictInterval) map[uuid.UUID][]*domain.ConflictInterval {
	grouped := make(map[uuid.UUID][]*domain.ConflictInterval)
	for _, c := range intervals {
		grouped[c.ScopeID] = append(grouped[c.ScopeID], c)
	}
	return grouped
}

func overlapsAny(intervals []*domain.ConflictInterval, start, end time.Time) bool {
	for _, c := range intervals {
		if c.Overlaps(start, end) {
			return true
		}
	}
	return false
}
