package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pettabl/internal/domain/profiles"
)

type profileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) profiles.Repository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	if _, exists := r.db.profiles[p.ID]; exists {
		return errors.New("profile already exists")
	}
	r.db.profiles[p.ID] = p
	return nil
}

func (r *profileRepo) Update(ctx context.Context, p profiles.Profile) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.profiles[p.ID]; !exists {
		return profiles.ErrNotFound
	}
	r.db.profiles[p.ID] = p
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.profiles[id]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, nil
}

func (r *profileRepo) SearchByRole(ctx context.Context, role profiles.Role, emailFragment string, limit int) ([]profiles.Profile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	frag := strings.ToLower(emailFragment)
	out := make([]profiles.Profile, 0)
	for _, p := range r.db.profiles {
		if p.Role != role {
			continue
		}
		if frag != "" && !strings.Contains(strings.ToLower(p.Email), frag) {
			continue
		}
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
