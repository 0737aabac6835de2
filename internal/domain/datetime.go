package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Все даты и время в сервисе хранятся как "настенное" время без часового пояса.
// В Go оно представлено time.Time в UTC: дата = полночь UTC, дата+время = полночь + смещение.

// DateOf отбрасывает время суток и приводит дату к полуночи UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CombineDateTime собирает абсолютный момент из даты и времени суток
func CombineDateTime(date time.Time, at types.TimeString) time.Time {
	return DateOf(date).Add(at.Duration())
}

// WallClock переносит момент в часовой пояс loc и возвращает его как настенное время в UTC
func WallClock(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), time.UTC)
}

// IsoWeekday возвращает день недели, где 0 = понедельник, 6 = воскресенье
func IsoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// FormatDate форматирует дату в YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ParseDate парсит дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateFormat, s, time.UTC)
}

// MaxTime возвращает более позднее из двух значений
func MaxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

// MinTime возвращает более раннее из двух значений
func MinTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}

// ParseDateTime парсит момент из строки в настенное время часового пояса loc
// Строка с зоной (RFC 3339) переводится в loc, строка без зоны считается уже настенной,
// дата без времени означает полночь
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return WallClock(t, loc), nil
	}

	for _, layout := range []string{DateTimeFormat, "2006-01-02T15:04", DateFormat} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}
