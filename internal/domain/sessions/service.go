package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pettabl/internal/domain/pets"
	"pettabl/internal/platform/dates"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidAgent = errors.New("agent_ids must reference fur_agent profiles")
	ErrNotFound     = errors.New("session not found")
	ErrPetNotFound  = pets.ErrNotFound
	ErrForbidden    = errors.New("forbidden")
)

const (
	roleFurAgent = "fur_agent"

	// MaxSessionDays acota el rango (inclusive) que recorren progress y dashboard.
	MaxSessionDays = 366
)

// PetLookup lo implementa pets.Service; un pet inexistente es pets.ErrNotFound.
type PetLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// RoleLookup evita importar profiles.
type RoleLookup interface {
	RoleOf(ctx context.Context, profileID string) (string, error)
}

type Service struct {
	repo  Repository
	pets  PetLookup
	roles RoleLookup

	now func() time.Time
	loc *time.Location
}

func NewService(repo Repository, petLookup PetLookup, roles RoleLookup, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:  repo,
		pets:  petLookup,
		roles: roles,
		now:   time.Now,
		loc:   loc,
	}
}

// Today es el día calendario actual en la zona configurada.
func (s *Service) Today() civil.Date {
	return dates.Today(s.now(), s.loc)
}

type CreateInput struct {
	StartDate civil.Date
	EndDate   civil.Date
	Notes     string
	AgentIDs  []string
}

func (s *Service) Create(ctx context.Context, petID, actorID string, in CreateInput) (Session, error) {
	petID = strings.TrimSpace(petID)
	actorID = strings.TrimSpace(actorID)
	if petID == "" || actorID == "" {
		return Session{}, ErrInvalidInput
	}

	ownerID, err := s.ownerOf(ctx, petID)
	if err != nil {
		return Session{}, err
	}
	if ownerID != actorID {
		return Session{}, ErrForbidden
	}

	if err := validateRange(in.StartDate, in.EndDate); err != nil {
		return Session{}, err
	}

	agents, err := s.checkAgents(ctx, in.AgentIDs)
	if err != nil {
		return Session{}, err
	}

	now := s.now()
	sess := Session{
		ID:        uuid.NewString(),
		PetID:     petID,
		OwnerID:   ownerID,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		Status:    ClassifyStatus(in.StartDate, in.EndDate, dates.Today(now, s.loc)),
		Notes:     strings.TrimSpace(in.Notes),
		AgentIDs:  agents,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// UpdateInput: nil = no tocar. AgentIDs != nil reemplaza las asignaciones.
type UpdateInput struct {
	StartDate *civil.Date
	EndDate   *civil.Date
	Notes     *string
	AgentIDs  *[]string
}

// Update recalcula y persiste el status siempre, aunque solo cambien las notas.
func (s *Service) Update(ctx context.Context, sessionID, actorID string, in UpdateInput) (Session, error) {
	sess, err := s.ownedBy(ctx, sessionID, actorID)
	if err != nil {
		return Session{}, err
	}

	if in.StartDate != nil {
		sess.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		sess.EndDate = *in.EndDate
	}
	if err := validateRange(sess.StartDate, sess.EndDate); err != nil {
		return Session{}, err
	}
	if in.Notes != nil {
		sess.Notes = strings.TrimSpace(*in.Notes)
	}

	now := s.now()
	sess.Status = ClassifyStatus(sess.StartDate, sess.EndDate, dates.Today(now, s.loc))
	sess.UpdatedAt = now

	if in.AgentIDs == nil {
		if err := s.repo.Update(ctx, sess); err != nil {
			return Session{}, err
		}
		return sess, nil
	}

	agents, err := s.checkAgents(ctx, *in.AgentIDs)
	if err != nil {
		return Session{}, err
	}
	sess.AgentIDs = agents
	if err := s.repo.UpdateWithAgents(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

func (s *Service) ReplaceAgents(ctx context.Context, sessionID, actorID string, agentIDs []string) (Session, error) {
	return s.Update(ctx, sessionID, actorID, UpdateInput{AgentIDs: &agentIDs})
}

func (s *Service) Delete(ctx context.Context, sessionID, actorID string) error {
	if _, err := s.ownedBy(ctx, sessionID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, sessionID)
}

// Get: visible para el owner y los agentes asignados.
func (s *Service) Get(ctx context.Context, sessionID, viewerID string) (Session, error) {
	sess, err := s.getByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.OwnerID != viewerID && !sess.HasAgent(viewerID) {
		return Session{}, ErrForbidden
	}
	return sess, nil
}

// ListByPet: el owner ve todas; un agente solo las suyas (si no tiene ninguna, forbidden).
func (s *Service) ListByPet(ctx context.Context, petID, viewerID string) ([]Session, error) {
	ownerID, err := s.ownerOf(ctx, petID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByPet(ctx, petID)
	if err != nil {
		return nil, err
	}

	if ownerID == viewerID {
		return s.withStatuses(items), nil
	}

	mine := make([]Session, 0)
	for _, it := range items {
		if it.HasAgent(viewerID) {
			mine = append(mine, it)
		}
	}
	if len(mine) == 0 {
		return nil, ErrForbidden
	}
	return s.withStatuses(mine), nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Session, error) {
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(items), nil
}

func (s *Service) ListByAgent(ctx context.Context, agentID string) ([]Session, error) {
	items, err := s.repo.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}
	return s.withStatuses(items), nil
}

// Find no chequea permisos; lo usan activities y dashboard, que aplican sus propias reglas.
func (s *Service) Find(ctx context.Context, sessionID string) (Session, error) {
	return s.getByID(ctx, sessionID)
}

// IsAgentForPet implementa pets.AgentAccess.
func (s *Service) IsAgentForPet(ctx context.Context, petID, agentID string) (bool, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(agentID) == "" {
		return false, nil
	}
	return s.repo.IsAgentForPet(ctx, petID, agentID)
}

// CanViewPet: owner o agente asignado a alguna sesión de la mascota.
func (s *Service) CanViewPet(ctx context.Context, petID, userID string) (bool, error) {
	ownerID, err := s.ownerOf(ctx, petID)
	if err != nil {
		return false, err
	}
	if ownerID == userID {
		return true, nil
	}
	return s.IsAgentForPet(ctx, petID, userID)
}

func (s *Service) ownerOf(ctx context.Context, petID string) (string, error) {
	ownerID, err := s.pets.OwnerOf(ctx, petID)
	if errors.Is(err, pets.ErrNotFound) {
		return "", ErrPetNotFound
	}
	return ownerID, err
}

func (s *Service) getByID(ctx context.Context, id string) (Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Session{}, ErrNotFound
	}
	sess, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}
	return s.withStatus(sess), nil
}

func (s *Service) ownedBy(ctx context.Context, sessionID, actorID string) (Session, error) {
	sess, err := s.getByID(ctx, sessionID)
	if err != nil {
		return Session{}, err
	}
	if sess.OwnerID != strings.TrimSpace(actorID) {
		return Session{}, ErrForbidden
	}
	return sess, nil
}

// withStatus deriva el status de las fechas; el valor guardado puede estar viejo.
func (s *Service) withStatus(sess Session) Session {
	sess.Status = ClassifyStatus(sess.StartDate, sess.EndDate, s.Today())
	return sess
}

func (s *Service) withStatuses(items []Session) []Session {
	today := s.Today()
	for i := range items {
		items[i].Status = ClassifyStatus(items[i].StartDate, items[i].EndDate, today)
	}
	return items
}

func (s *Service) checkAgents(ctx context.Context, ids []string) ([]string, error) {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(ids))

	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		role, err := s.roles.RoleOf(ctx, id)
		if err != nil || role != roleFurAgent {
			return nil, ErrInvalidAgent
		}
		out = append(out, id)
	}
	return out, nil
}

func validateRange(start, end civil.Date) error {
	if !start.IsValid() || !end.IsValid() {
		return ErrInvalidInput
	}
	if end.Before(start) {
		return ErrInvalidInput
	}
	if end.DaysSince(start) >= MaxSessionDays {
		return fmt.Errorf("%w: sessions span at most %d days", ErrInvalidInput, MaxSessionDays)
	}
	return nil
}
