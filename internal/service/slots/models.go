package slots

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Options переключатели проверок конфликтов
type Options struct {
	ExcludeClosures bool
	ExcludeAbsences bool
	ExcludeBookings bool
}

// DefaultOptions включает все проверки
func DefaultOptions() Options {
	return Options{
		ExcludeClosures: true,
		ExcludeAbsences: true,
		ExcludeBookings: true,
	}
}

// Query параметры генерации слотов
type Query struct {
	Window     domain.Window
	ServiceID  *uuid.UUID
	OperatorID *uuid.UUID
	LocationID *uuid.UUID
	RuleID     *uuid.UUID
	Options    Options
}

// Snapshot неизменяемый набор данных, по которому считаются слоты
// nil-срез означает, что источник не запрашивался: конфликтов из него нет
type Snapshot struct {
	Rules    []*domain.AvailabilityRule
	Closures []*domain.ConflictInterval
	Absences []*domain.ConflictInterval
	Bookings []*domain.Booking
}
