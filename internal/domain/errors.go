package domain

import "errors"

var (
	// ErrInvalidWindow возвращается, когда начало окна позже его конца
	ErrInvalidWindow = errors.New("domain: window start is after window end")

	// ErrInvalidRule возвращается, когда правило нарушает инварианты
	ErrInvalidRule = errors.New("domain: invalid availability rule")

	// ErrInvalidInterval возвращается, когда начало интервала не раньше конца
	ErrInvalidInterval = errors.New("domain: interval start must be before end")

	// ErrInvalidDateTime возвращается, когда строку не удалось разобрать как дату и время
	ErrInvalidDateTime = errors.New("domain: invalid date time")
)
