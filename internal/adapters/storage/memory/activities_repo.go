package memory

import (
	"context"
	"sort"

	"pettabl/internal/domain/activities"

	"cloud.google.com/go/civil"
)

type activityRepo struct {
	db *DB
}

func NewActivityRepo(db *DB) activities.Repository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Create(ctx context.Context, a activities.Activity) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.sessions[a.SessionID]; !ok {
		return activities.ErrSessionNotFound
	}
	for _, cur := range r.db.activities {
		if cur.SessionID == a.SessionID && cur.Date == a.Date &&
			cur.ActivityType == a.ActivityType && cur.TimePeriod == a.TimePeriod {
			return activities.ErrConflict
		}
	}
	r.db.activities[a.ID] = a
	return nil
}

func (r *activityRepo) GetByID(ctx context.Context, id string) (activities.Activity, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.activities[id]
	if !ok {
		return activities.Activity{}, activities.ErrNotFound
	}
	return a, nil
}

func (r *activityRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.activities[id]; !ok {
		return activities.ErrNotFound
	}
	delete(r.db.activities, id)
	return nil
}

func (r *activityRepo) ListBySession(ctx context.Context, sessionID string, date *civil.Date) ([]activities.Activity, error) {
	return r.list(func(a activities.Activity) bool {
		return a.SessionID == sessionID && (date == nil || a.Date == *date)
	}, 0), nil
}

func (r *activityRepo) ListPhotosByPet(ctx context.Context, petID string, limit int) ([]activities.Activity, error) {
	return r.list(func(a activities.Activity) bool {
		return a.PetID == petID && a.PhotoURL != ""
	}, limit), nil
}

func (r *activityRepo) CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := map[civil.Date]int{}
	for _, a := range r.db.activities {
		if a.SessionID == sessionID {
			out[a.Date]++
		}
	}
	return out, nil
}

func (r *activityRepo) list(keep func(activities.Activity) bool, limit int) []activities.Activity {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]activities.Activity, 0)
	for _, a := range r.db.activities {
		if keep(a) {
			out = append(out, a)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
