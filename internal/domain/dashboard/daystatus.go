package dashboard

import (
	"pettabl/internal/platform/dates"

	"cloud.google.com/go/civil"
)

// DayStatus de un día de la sesión.
// @Enum future, none, partial, complete
type DayStatus string

const (
	DayFuture   DayStatus = "future"
	DayNone     DayStatus = "none"
	DayPartial  DayStatus = "partial"
	DayComplete DayStatus = "complete"
)

type Day struct {
	Date   civil.Date `json:"date"`
	Status DayStatus  `json:"status"`
}

// DayStatuses etiqueta cada día de [start, end]:
//   - después de hoy: future
//   - sin slots en el plan: complete si hubo alguna completación, si no future
//   - con slots: none (0), partial (< slots), complete (>= slots)
//
// Pura: mismas entradas, misma secuencia. Rango invertido => vacío.
func DayStatuses(start, end, today civil.Date, slotsPerDay int, completedByDay map[civil.Date]int) []Day {
	days := dates.Each(start, end)
	out := make([]Day, 0, len(days))

	for _, d := range days {
		out = append(out, Day{Date: d, Status: statusFor(d, today, slotsPerDay, completedByDay[d])})
	}
	return out
}

func statusFor(d, today civil.Date, slots, completed int) DayStatus {
	if d.After(today) {
		return DayFuture
	}
	if slots <= 0 {
		if completed > 0 {
			return DayComplete
		}
		return DayFuture
	}
	switch {
	case completed <= 0:
		return DayNone
	case completed < slots:
		return DayPartial
	default:
		return DayComplete
	}
}
