package entities

import "time"

// DateLayout формат календарной даты в API и отчетах.
const DateLayout = time.DateOnly

// DateOf отбрасывает время суток, сохраняя календарный день в локации t.
// Результат всегда в UTC, чтобы даты сравнивались и хранились одинаково.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate разбирает дату в формате YYYY-MM-DD.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}

// DaysBetween возвращает число целых дней от from до to (отрицательное, если to раньше).
func DaysBetween(from, to time.Time) int {
	return int(unixDay(DateOf(to)) - unixDay(DateOf(from)))
}

// unixDay номер дня от эпохи для полуночи UTC. time.Duration переполняется на интервалах больше ~292 лет.
func unixDay(t time.Time) int64 {
	return t.Unix() / secondsPerDay
}

const secondsPerDay = 24 * 60 * 60
