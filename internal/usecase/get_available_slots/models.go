package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ServiceID  uuid.UUID  // ID услуги
	OperatorID *uuid.UUID // опционально: только этот оператор
	LocationID *uuid.UUID // опционально: только эта локация
	From       *time.Time // начало окна, настенное время
	To         *time.Time // конец окна, настенное время
	PageDate   *time.Time // дата, слоты которой вернуть в Slots
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ServiceID uuid.UUID
	From      time.Time // фактическое окно после ограничений
	To        time.Time

	DateList []string      // даты со слотами, по возрастанию
	PageDate *string       // дата, для которой возвращены Slots
	Slots    []domain.Slot // слоты PageDate

	Operators []*domain.Operator
	Locations []*domain.Location

	PrevCursor *time.Time // начало предыдущего окна, nil если раньше нельзя
	NextCursor *time.Time // начало следующего окна, nil если дальше горизонт
}

// WindowPolicy ограничения окна запроса
type WindowPolicy struct {
	MinNoticeDays int            // первая доступная дата: сегодня + MinNoticeDays
	HorizonDays   int            // сколько дней после первой доступной даты открыто для записи
	MaxWindowDays int            // максимальная ширина окна
	Location      *time.Location // часовой пояс правил
}
