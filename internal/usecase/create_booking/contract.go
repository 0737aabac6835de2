package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
)

// RuleRepository интерфейс репозитория правил
type RuleRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityRule, error)
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
}

// SlotGenerator движок генерации слотов, повторно проверяет доступность слота
type SlotGenerator interface {
	Generate(ctx context.Context, q slots.Query) (domain.ResultSet, error)
}

// Notifier публикует события о бронированиях
type Notifier interface {
	PublishBookingConfirmed(ctx context.Context, booking *domain.Booking) error
}

// Metrics метрики попыток бронирования
type Metrics interface {
	IncBookingAttempt(result string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
