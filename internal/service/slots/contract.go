package slots

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RuleRepository источник правил доступности
type RuleRepository interface {
	// FindEnabled возвращает включённые правила, пересекающиеся с диапазоном дат фильтра
	FindEnabled(ctx context.Context, filter domain.RuleFilter) ([]*domain.AvailabilityRule, error)
}

// ConflictRepository источник закрытий локаций или отсутствий операторов
type ConflictRepository interface {
	// FindOverlapping возвращает интервалы, пересекающиеся с окном (scopeID = nil - по всем)
	FindOverlapping(ctx context.Context, window domain.Window, scopeID *uuid.UUID) ([]*domain.ConflictInterval, error)
}

// BookingRepository источник активных бронирований
type BookingRepository interface {
	FindActive(ctx context.Context, filter domain.BookingFilter) ([]*domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
