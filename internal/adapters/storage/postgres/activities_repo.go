package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pettabl/internal/domain/activities"
	"pettabl/internal/domain/schedules"

	"cloud.google.com/go/civil"
)

type ActivitiesRepo struct {
	db *sql.DB
}

func NewActivitiesRepo(db *sql.DB) *ActivitiesRepo {
	return &ActivitiesRepo{db: db}
}

const activityColumns = `
	id, session_id, pet_id, caretaker_id,
	activity_type, time_period, date,
	photo_url, created_at`

func (r *ActivitiesRepo) Create(ctx context.Context, a activities.Activity) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO activities (`+activityColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		a.ID,
		a.SessionID,
		a.PetID,
		a.CaretakerID,
		string(a.ActivityType),
		string(a.TimePeriod),
		dateArg(a.Date),
		a.PhotoURL,
		a.CreatedAt,
	)
	if isUniqueViolation(err) {
		return activities.ErrConflict
	}
	return err
}

func (r *ActivitiesRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+activityColumns+` FROM activities WHERE id = $1`, id)
	a, err := scanActivity(row)
	if errors.Is(err, sql.ErrNoRows) {
		return activities.Activity{}, activities.ErrNotFound
	}
	return a, err
}

func (r *ActivitiesRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return activities.ErrNotFound
	}
	return nil
}

func (r *ActivitiesRepo) ListBySession(ctx context.Context, sessionID string, date *civil.Date) ([]activities.Activity, error) {
	if date == nil {
		return r.query(ctx, `
			SELECT `+activityColumns+`
			FROM activities
			WHERE session_id = $1
			ORDER BY created_at DESC
		`, sessionID)
	}
	return r.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE session_id = $1 AND date = $2
		ORDER BY created_at DESC
	`, sessionID, dateArg(*date))
}

func (r *ActivitiesRepo) ListPhotosByPet(ctx context.Context, petID string, limit int) ([]activities.Activity, error) {
	return r.query(ctx, `
		SELECT `+activityColumns+`
		FROM activities
		WHERE pet_id = $1 AND photo_url <> ''
		ORDER BY created_at DESC
		LIMIT $2
	`, petID, limit)
}

func (r *ActivitiesRepo) CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, count(*)
		FROM activities
		WHERE session_id = $1
		GROUP BY date
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[civil.Date]int{}
	for rows.Next() {
		var (
			d time.Time
			n int
		)
		if err := rows.Scan(&d, &n); err != nil {
			return nil, err
		}
		out[toDate(d)] = n
	}
	return out, rows.Err()
}

func (r *ActivitiesRepo) query(ctx context.Context, q string, args ...any) ([]activities.Activity, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]activities.Activity, 0)
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanActivity(s scanner) (activities.Activity, error) {
	var (
		a      activities.Activity
		at, tp string
		d      time.Time
	)
	if err := s.Scan(
		&a.ID,
		&a.SessionID,
		&a.PetID,
		&a.CaretakerID,
		&at,
		&tp,
		&d,
		&a.PhotoURL,
		&a.CreatedAt,
	); err != nil {
		return activities.Activity{}, err
	}
	a.ActivityType = schedules.ActivityType(at)
	a.TimePeriod = schedules.TimePeriod(tp)
	a.Date = toDate(d)
	return a, nil
}
