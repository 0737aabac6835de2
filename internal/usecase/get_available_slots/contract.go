package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/slots"
)

// SlotGenerator движок генерации слотов
type SlotGenerator interface {
	Generate(ctx context.Context, q slots.Query) (domain.ResultSet, error)
}

// CatalogRepository справочники для фильтров на странице записи
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
	ListLocationsForService(ctx context.Context, serviceID uuid.UUID, operatorID *uuid.UUID) ([]*domain.Location, error)
	ListOperatorsForService(ctx context.Context, serviceID uuid.UUID, locationID *uuid.UUID) ([]*domain.Operator, error)
}

// Metrics метрики генерации
type Metrics interface {
	ObserveSlotGeneration(slots int, d time.Duration)
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
