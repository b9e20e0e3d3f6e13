package sessions

import (
	"time"

	"cloud.google.com/go/civil"
)

// Status de una sesión.
// @Enum planned, active, completed
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// ClassifyStatus: planned si hoy < start, completed si hoy > end, si no active.
// Ambos bordes cuentan como active.
func ClassifyStatus(start, end, today civil.Date) Status {
	switch {
	case today.Before(start):
		return StatusPlanned
	case today.After(end):
		return StatusCompleted
	default:
		return StatusActive
	}
}

// Session: período de cuidado de una mascota, con uno o más agentes.
type Session struct {
	ID      string
	PetID   string
	OwnerID string // fur_boss_id

	StartDate civil.Date
	EndDate   civil.Date

	// Status persistido al escribir; el service lo recalcula al leer.
	Status Status
	Notes  string

	AgentIDs []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s Session) HasAgent(userID string) bool {
	for _, id := range s.AgentIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Contains indica si el día cae dentro del rango (inclusive).
func (s Session) Contains(d civil.Date) bool {
	return !d.Before(s.StartDate) && !d.After(s.EndDate)
}
