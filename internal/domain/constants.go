package domain

// Rule validation constants
const (
	MinSlotDurationMinutes = 5
	MaxSlotDurationMinutes = 480 // 8 hours
	MinPauseMinutes        = 0
	MaxPauseMinutes        = 240
	MinWeekday             = 0 // Monday
	MaxWeekday             = 6 // Sunday
)

// Booking window defaults
const (
	DefaultHorizonDays   = 365 // как далеко вперёд можно бронировать
	DefaultMaxWindowDays = 31  // максимальная ширина окна одного запроса слотов
	DefaultMinNoticeDays = 1   // бронирование доступно начиная с завтрашнего дня
)

// Time formats
const (
	TimeFormat     = "15:04"               // HH:MM
	DateFormat     = "2006-01-02"          // YYYY-MM-DD
	DateTimeFormat = "2006-01-02T15:04:05" // настенное время без зоны
)
