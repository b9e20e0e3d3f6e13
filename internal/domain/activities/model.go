package activities

import (
	"time"

	"pettabl/internal/domain/schedules"

	"cloud.google.com/go/civil"
)

// Activity: una fila por tarea completada (slot de un día).
type Activity struct {
	ID          string
	SessionID   string
	PetID       string
	CaretakerID string

	ActivityType schedules.ActivityType
	TimePeriod   schedules.TimePeriod
	Date         civil.Date

	PhotoURL  string
	CreatedAt time.Time
}
