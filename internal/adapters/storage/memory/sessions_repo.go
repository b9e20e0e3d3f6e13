package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pettabl/internal/domain/sessions"
)

type sessionRepo struct {
	db *DB
}

func NewSessionRepo(db *DB) sessions.Repository {
	return &sessionRepo{db: db}
}

func (r *sessionRepo) Create(ctx context.Context, s sessions.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if strings.TrimSpace(s.ID) == "" {
		return errors.New("session id required")
	}
	if _, exists := r.db.sessions[s.ID]; exists {
		return errors.New("session already exists")
	}

	r.db.agents[s.ID] = append([]string(nil), s.AgentIDs...)
	s.AgentIDs = nil
	r.db.sessions[s.ID] = s
	return nil
}

// Update no toca session_agents (eso es UpdateWithAgents).
func (r *sessionRepo) Update(ctx context.Context, s sessions.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.sessions[s.ID]; !exists {
		return sessions.ErrNotFound
	}
	s.AgentIDs = nil
	r.db.sessions[s.ID] = s
	return nil
}

func (r *sessionRepo) Delete(ctx context.Context, id string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.sessions[id]; !exists {
		return sessions.ErrNotFound
	}
	r.db.deleteSessionLocked(id)
	return nil
}

func (r *sessionRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.sessions[id]
	if !ok {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return r.withAgentsLocked(s), nil
}

func (r *sessionRepo) ListByPet(ctx context.Context, petID string) ([]sessions.Session, error) {
	return r.list(func(s sessions.Session) bool { return s.PetID == petID }), nil
}

func (r *sessionRepo) ListByOwner(ctx context.Context, ownerID string) ([]sessions.Session, error) {
	return r.list(func(s sessions.Session) bool { return s.OwnerID == ownerID }), nil
}

func (r *sessionRepo) ListByAgent(ctx context.Context, agentID string) ([]sessions.Session, error) {
	return r.list(func(s sessions.Session) bool { return s.HasAgent(agentID) }), nil
}

func (r *sessionRepo) UpdateWithAgents(ctx context.Context, s sessions.Session) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.sessions[s.ID]; !exists {
		return sessions.ErrNotFound
	}
	r.db.agents[s.ID] = append([]string(nil), s.AgentIDs...)
	s.AgentIDs = nil
	r.db.sessions[s.ID] = s
	return nil
}

func (r *sessionRepo) IsAgentForPet(ctx context.Context, petID, agentID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for id, s := range r.db.sessions {
		if s.PetID != petID {
			continue
		}
		for _, a := range r.db.agents[id] {
			if a == agentID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *sessionRepo) list(keep func(sessions.Session) bool) []sessions.Session {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]sessions.Session, 0)
	for _, s := range r.db.sessions {
		s = r.withAgentsLocked(s)
		if keep(s) {
			out = append(out, s)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *sessionRepo) withAgentsLocked(s sessions.Session) sessions.Session {
	s.AgentIDs = append([]string{}, r.db.agents[s.ID]...)
	return s
}
