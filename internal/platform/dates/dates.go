// Package dates concentra el manejo de días calendario (sin hora ni zona).
package dates

import (
	"errors"
	"strings"
	"time"

	"cloud.google.com/go/civil"
)

var ErrInvalidDate = errors.New("date must be YYYY-MM-DD")

// Parse acepta YYYY-MM-DD.
func Parse(s string) (civil.Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return civil.Date{}, ErrInvalidDate
	}
	return d, nil
}

// Today devuelve el día calendario de now en loc (UTC si loc es nil).
func Today(now time.Time, loc *time.Location) civil.Date {
	if loc == nil {
		loc = time.UTC
	}
	return civil.DateOf(now.In(loc))
}

// Each recorre [start, end] inclusive. Si end < start devuelve vacío.
func Each(start, end civil.Date) []civil.Date {
	if end.Before(start) {
		return nil
	}
	n := end.DaysSince(start) + 1
	out := make([]civil.Date, 0, n)
	for d := start; !d.After(end); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// ToTime mapea a medianoche UTC (columnas DATE).
func ToTime(d civil.Date) time.Time {
	return d.In(time.UTC)
}

// FromTime toma el día de una columna DATE (pgx la devuelve como medianoche UTC).
func FromTime(t time.Time) civil.Date {
	return civil.DateOf(t.UTC())
}
