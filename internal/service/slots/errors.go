package slots

import (
	"errors"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

var (
	// ErrInvalidWindow возвращается, когда начало окна позже конца
	ErrInvalidWindow = domain.ErrInvalidWindow

	// ErrFetchRules возвращается при ошибке получения правил
	ErrFetchRules = errors.New("slots: failed to fetch rules")

	// ErrFetchConflicts возвращается при ошибке получения закрытий или отсутствий
	ErrFetchConflicts = errors.New("slots: failed to fetch conflict intervals")

	// ErrFetchBookings возвращается при ошибке получения бронирований
	ErrFetchBookings = errors.New("slots: failed to fetch bookings")
)
