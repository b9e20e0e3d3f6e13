package memory

import (
	"context"

	"pettabl/internal/domain/schedules"
)

type scheduleRepo struct {
	db *DB
}

func NewScheduleRepo(db *DB) schedules.Repository {
	return &scheduleRepo{db: db}
}

func (r *scheduleRepo) GetStanding(ctx context.Context, petID string) (schedules.Schedule, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, s := range r.db.schedules {
		if s.PetID == petID && s.SessionID == nil {
			s.Times = append([]schedules.Slot{}, s.Times...)
			return s, nil
		}
	}
	return schedules.Schedule{}, schedules.ErrNotFound
}

func (r *scheduleRepo) Create(ctx context.Context, s schedules.Schedule) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s.Times = append([]schedules.Slot{}, s.Times...)
	r.db.schedules[s.ID] = s
	return nil
}

func (r *scheduleRepo) ReplaceTimes(ctx context.Context, scheduleID string, times []schedules.Slot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.schedules[scheduleID]
	if !ok {
		return schedules.ErrNotFound
	}
	s.Times = append([]schedules.Slot{}, times...)
	r.db.schedules[scheduleID] = s
	return nil
}

func (r *scheduleRepo) AddTime(ctx context.Context, t schedules.Slot) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.schedules[t.ScheduleID]
	if !ok {
		return schedules.ErrNotFound
	}
	s.Times = append(s.Times, t)
	r.db.schedules[t.ScheduleID] = s
	return nil
}

func (r *scheduleRepo) DeleteTime(ctx context.Context, scheduleID string, at schedules.ActivityType, p schedules.TimePeriod) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	s, ok := r.db.schedules[scheduleID]
	if !ok {
		return schedules.ErrNotFound
	}
	kept := make([]schedules.Slot, 0, len(s.Times))
	for _, t := range s.Times {
		if t.ActivityType == at && t.TimePeriod == p {
			continue
		}
		kept = append(kept, t)
	}
	s.Times = kept
	r.db.schedules[scheduleID] = s
	return nil
}
