package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotAlreadyBooked возвращается, когда на слот уже есть активное бронирование
	ErrSlotAlreadyBooked = errors.New("booking.repository: slot already booked")

	// ErrRuleNotFound возвращается, когда правило бронирования не существует
	ErrRuleNotFound = errors.New("booking.repository: rule not found")

	// ErrAlreadyRejected возвращается при повторном отклонении бронирования
	ErrAlreadyRejected = errors.New("booking.repository: booking already rejected")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
