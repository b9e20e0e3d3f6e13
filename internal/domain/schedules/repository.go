package schedules

import "context"

type Repository interface {
	// GetStanding devuelve el schedule con session_id NULL, con Times cargados (ErrNotFound si no hay).
	GetStanding(ctx context.Context, petID string) (Schedule, error)
	Create(ctx context.Context, s Schedule) error

	ReplaceTimes(ctx context.Context, scheduleID string, times []Slot) error
	AddTime(ctx context.Context, t Slot) error
	DeleteTime(ctx context.Context, scheduleID string, t ActivityType, p TimePeriod) error
}
