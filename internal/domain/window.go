package domain

import (
	"fmt"
	"time"
)

// Window интервал запроса слотов [From, To)
// Любая из границ может отсутствовать (nil = без ограничения)
type Window struct {
	From *time.Time
	To   *time.Time
}

// NewWindow создает окно с обеими границами
func NewWindow(from, to time.Time) Window {
	return Window{From: &from, To: &to}
}

// Validate проверяет, что начало окна не позже конца
func (w Window) Validate() error {
	if w.From != nil && w.To != nil && w.From.After(*w.To) {
		return fmt.Errorf("%w: from=%s, to=%s", ErrInvalidWindow,
			w.From.Format(time.RFC3339), w.To.Format(time.RFC3339))
	}
	return nil
}

// FromDate возвращает дату начала окна (nil, если граница не задана)
func (w Window) FromDate() *time.Time {
	if w.From == nil {
		return nil
	}
	d := DateOf(*w.From)
	return &d
}

// ToDate возвращает дату конца окна (nil, если граница не задана)
func (w Window) ToDate() *time.Time {
	if w.To == nil {
		return nil
	}
	d := DateOf(*w.To)
	return &d
}

// Contains проверяет, что интервал [start, end) целиком лежит в окне
// Слот, заканчивающийся ровно на To, считается попавшим в окно
func (w Window) Contains(start, end time.Time) bool {
	if w.From != nil && start.Before(*w.From) {
		return false
	}
	if w.To != nil && end.After(*w.To) {
		return false
	}
	return true
}
