package notifications

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Noop издатель, который ничего не отправляет. Используется, когда уведомления выключены
type Noop struct{}

func (Noop) PublishBookingConfirmed(context.Context, *domain.Booking) error { return nil }

func (Noop) PublishBookingRejected(context.Context, *domain.Booking) error { return nil }

func (Noop) Close() error { return nil }
