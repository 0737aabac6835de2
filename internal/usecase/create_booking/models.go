package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	AccountID uuid.UUID        // ID пользователя
	RuleID    uuid.UUID        // ID правила, по которому сгенерирован слот
	Date      time.Time        // Дата бронирования (без времени)
	StartTime types.TimeString // Время начала слота (например, "10:00")
	Notes     *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID         uuid.UUID
	AccountID  uuid.UUID
	RuleID     uuid.UUID
	ServiceID  uuid.UUID
	LocationID uuid.UUID
	OperatorID uuid.UUID
	Date       time.Time
	TimeStart  types.TimeString
	TimeEnd    types.TimeString
	Notes      *string

	// Денормализованные данные
	ServiceName     string
	LocationName    string
	LocationAddress string
	OperatorName    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Policy ограничения дат записи
type Policy struct {
	MinNoticeDays int            // первая доступная дата: сегодня + MinNoticeDays
	HorizonDays   int            // сколько дней после первой доступной даты открыто для записи
	Location      *time.Location // часовой пояс правил
}
