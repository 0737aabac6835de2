package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ConflictKind тип интервала-блокировки
type ConflictKind string

const (
	ConflictClosure ConflictKind = "closure" // закрытие локации
	ConflictAbsence ConflictKind = "absence" // отсутствие оператора
)

// ConflictInterval интервал [Start, End), в который слоты недоступны
// ScopeID - локация для закрытия, оператор для отсутствия
type ConflictInterval struct {
	ID        uuid.UUID
	Kind      ConflictKind
	ScopeID   uuid.UUID
	Start     time.Time
	End       time.Time
	Reason    *string
	CreatedAt time.Time
}

// Validate проверяет, что интервал непустой
func (c *ConflictInterval) Validate() error {
	if !c.Start.Before(c.End) {
		return fmt.Errorf("%w: start=%s, end=%s", ErrInvalidInterval,
			c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339))
	}
	return nil
}

// Overlaps проверяет пересечение полуоткрытых интервалов [start, end) и [c.Start, c.End)
// Интервалы, которые только соприкасаются границами, не пересекаются
func (c *ConflictInterval) Overlaps(start, end time.Time) bool {
	return start.Before(c.End) && end.After(c.Start)
}
