package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pettabl/internal/domain/pets"
)

type petRepo struct {
	db *DB
}

func NewPetRepo(db *DB) pets.Repository {
	return &petRepo{db: db}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.db.pets[p.ID]; exists {
		return errors.New("pet already exists")
	}
	if _, ok := r.db.profiles[p.OwnerID]; !ok {
		return pets.ErrOwnerNotFound
	}
	r.db.pets[p.ID] = p
	return nil
}

func (r *petRepo) Update(ctx context.Context, p pets.Pet) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.pets[p.ID]; !exists {
		return pets.ErrNotFound
	}
	r.db.pets[p.ID] = p
	return nil
}

// Delete cascadea a sesiones (y sus actividades) y schedules, igual que las FKs.
func (r *petRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.pets[id]; !exists {
		return pets.ErrNotFound
	}
	delete(r.db.pets, id)

	for sid, s := range r.db.sessions {
		if s.PetID == id {
			r.db.deleteSessionLocked(sid)
		}
	}
	for schID, sch := range r.db.schedules {
		if sch.PetID == id {
			delete(r.db.schedules, schID)
		}
	}
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.db.pets {
		if p.OwnerID == ownerID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
