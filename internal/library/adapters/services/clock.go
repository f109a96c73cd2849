package services

import (
	"time"
	_ "time/tzdata" // пояса доступны без системной базы

	svc "libraryhub/internal/library/ports/services"
)

// SystemClock текущее время в часовом поясе библиотеки. Календарный день выдачи
// и возврата определяется этим поясом.
type SystemClock struct {
	loc *time.Location
}

var _ svc.Clock = (*SystemClock)(nil)

// NewSystemClock с nil используется UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	if loc == nil {
		loc = time.UTC
	}
	return &SystemClock{loc: loc}
}

// LoadClock создает часы по имени пояса IANA, например "Europe/Moscow".
func LoadClock(timezone string) (*SystemClock, error) {
	if timezone == "" {
		return NewSystemClock(time.UTC), nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return NewSystemClock(loc), nil
}

func (c *SystemClock) Now() time.Time {
	return time.Now().In(c.loc)
}
