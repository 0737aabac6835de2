package schedule

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// RuleRepository интерфейс репозитория правил доступности
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityRule, error)
	SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*domain.AvailabilityRule, error)
}

// IntervalRepository интерфейс репозитория закрытий или отсутствий
type IntervalRepository interface {
	Create(ctx context.Context, interval *domain.ConflictInterval) (*domain.ConflictInterval, error)
}

// CatalogRepository интерфейс справочника услуг
type CatalogRepository interface {
	GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
