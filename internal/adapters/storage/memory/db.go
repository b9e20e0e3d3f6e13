// Package memory implementa los repositorios en memoria (dev sin DB_DSN y tests).
// Todas las tablas comparten un lock para poder borrar en cascada como Postgres.
package memory

import (
	"sync"

	"pettabl/internal/domain/activities"
	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/profiles"
	"pettabl/internal/domain/schedules"
	"pettabl/internal/domain/sessions"
	"pettabl/internal/domain/waitlist"
)

type DB struct {
	mu sync.RWMutex

	profiles   map[string]profiles.Profile
	pets       map[string]pets.Pet
	sessions   map[string]sessions.Session // AgentIDs vive en agents
	agents     map[string][]string         // session_id -> fur_agent_ids
	schedules  map[string]schedules.Schedule
	activities map[string]activities.Activity
	waitlist   map[string]waitlist.Entry // por email
}

func NewDB() *DB {
	return &DB{
		profiles:   map[string]profiles.Profile{},
		pets:       map[string]pets.Pet{},
		sessions:   map[string]sessions.Session{},
		agents:     map[string][]string{},
		schedules:  map[string]schedules.Schedule{},
		activities: map[string]activities.Activity{},
		waitlist:   map[string]waitlist.Entry{},
	}
}

// deleteSessionLocked borra la sesión, sus asignaciones y sus actividades.
func (db *DB) deleteSessionLocked(id string) {
	delete(db.sessions, id)
	delete(db.agents, id)
	for aid, a := range db.activities {
		if a.SessionID == id {
			delete(db.activities, aid)
		}
	}
}
