package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pettabl/internal/domain/schedules"
)

type SchedulesRepo struct {
	db *sql.DB
}

func NewSchedulesRepo(db *sql.DB) *SchedulesRepo {
	return &SchedulesRepo{db: db}
}

func (r *SchedulesRepo) GetStanding(ctx context.Context, petID string) (schedules.Schedule, error) {
	var s schedules.Schedule
	err := r.db.QueryRowContext(ctx, `
		SELECT id, pet_id
		FROM schedules
		WHERE pet_id = $1 AND session_id IS NULL
	`, petID).Scan(&s.ID, &s.PetID)
	if errors.Is(err, sql.ErrNoRows) {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	if err != nil {
		return schedules.Schedule{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, schedule_id, activity_type, time_period
		FROM schedule_times
		WHERE schedule_id = $1
	`, s.ID)
	if err != nil {
		return schedules.Schedule{}, err
	}
	defer rows.Close()

	s.Times = make([]schedules.Slot, 0)
	for rows.Next() {
		var (
			t      schedules.Slot
			at, tp string
		)
		if err := rows.Scan(&t.ID, &t.ScheduleID, &at, &tp); err != nil {
			return schedules.Schedule{}, err
		}
		t.ActivityType = schedules.ActivityType(at)
		t.TimePeriod = schedules.TimePeriod(tp)
		s.Times = append(s.Times, t)
	}
	return s, rows.Err()
}

func (r *SchedulesRepo) Create(ctx context.Context, s schedules.Schedule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO schedules (id, pet_id, session_id)
		VALUES ($1, $2, $3)
	`, s.ID, s.PetID, toNullString(s.SessionID)); err != nil {
		return err
	}
	if err := insertTimes(ctx, tx, s.Times); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SchedulesRepo) ReplaceTimes(ctx context.Context, scheduleID string, times []schedules.Slot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_times WHERE schedule_id = $1`, scheduleID); err != nil {
		return err
	}
	if err := insertTimes(ctx, tx, times); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SchedulesRepo) AddTime(ctx context.Context, t schedules.Slot) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO schedule_times (id, schedule_id, activity_type, time_period)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (schedule_id, activity_type, time_period) DO NOTHING
	`, t.ID, t.ScheduleID, string(t.ActivityType), string(t.TimePeriod))
	return err
}

func (r *SchedulesRepo) DeleteTime(ctx context.Context, scheduleID string, at schedules.ActivityType, p schedules.TimePeriod) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM schedule_times
		WHERE schedule_id = $1 AND activity_type = $2 AND time_period = $3
	`, scheduleID, string(at), string(p))
	return err
}

func insertTimes(ctx context.Context, tx *sql.Tx, times []schedules.Slot) error {
	for _, t := range times {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO schedule_times (id, schedule_id, activity_type, time_period)
			VALUES ($1, $2, $3, $4)
		`, t.ID, t.ScheduleID, string(t.ActivityType), string(t.TimePeriod)); err != nil {
			return err
		}
	}
	return nil
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
