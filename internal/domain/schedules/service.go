package schedules

import (
	"context"
	"errors"
	"sort"
	"strings"

	"pettabl/internal/domain/pets"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("schedule not found")
	ErrPetNotFound  = pets.ErrNotFound
	ErrForbidden    = errors.New("forbidden")
)

// PetOwnerLookup lo implementa pets.Service.
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

// ViewAccess: owner o agente asignado (lo implementa sessions.Service).
type ViewAccess interface {
	CanViewPet(ctx context.Context, petID, userID string) (bool, error)
}

type Service struct {
	repo   Repository
	owners PetOwnerLookup
	access ViewAccess
}

func NewService(repo Repository, owners PetOwnerLookup, access ViewAccess) *Service {
	return &Service{repo: repo, owners: owners, access: access}
}

type SlotInput struct {
	ActivityType string
	TimePeriod   string
}

// GetStanding devuelve el plan estándar; si la mascota no tiene uno, un Schedule vacío (sin ID).
func (s *Service) GetStanding(ctx context.Context, petID, viewerID string) (Schedule, error) {
	ok, err := s.access.CanViewPet(ctx, petID, viewerID)
	if err != nil {
		return Schedule{}, err
	}
	if !ok {
		return Schedule{}, ErrForbidden
	}
	return s.standing(ctx, petID)
}

// ReplaceStanding crea el schedule si falta y reemplaza todos los slots.
func (s *Service) ReplaceStanding(ctx context.Context, petID, actorID string, in []SlotInput) (Schedule, error) {
	if err := s.checkOwner(ctx, petID, actorID); err != nil {
		return Schedule{}, err
	}

	parsed := make([]Slot, 0, len(in))
	seen := map[string]struct{}{}
	for _, raw := range in {
		sl, err := parseSlot(raw)
		if err != nil {
			return Schedule{}, err
		}
		if _, dup := seen[sl.key()]; dup {
			continue
		}
		seen[sl.key()] = struct{}{}
		parsed = append(parsed, sl)
	}

	sch, err := s.ensure(ctx, petID)
	if err != nil {
		return Schedule{}, err
	}

	for i := range parsed {
		parsed[i].ID = uuid.NewString()
		parsed[i].ScheduleID = sch.ID
	}
	if err := s.repo.ReplaceTimes(ctx, sch.ID, parsed); err != nil {
		return Schedule{}, err
	}

	sch.Times = parsed
	sortSlots(sch.Times)
	return sch, nil
}

// ToggleSlot agrega el slot si no existe o lo quita si ya estaba.
func (s *Service) ToggleSlot(ctx context.Context, petID, actorID string, in SlotInput) (Schedule, error) {
	if err := s.checkOwner(ctx, petID, actorID); err != nil {
		return Schedule{}, err
	}
	sl, err := parseSlot(in)
	if err != nil {
		return Schedule{}, err
	}

	sch, err := s.ensure(ctx, petID)
	if err != nil {
		return Schedule{}, err
	}

	if sch.Has(sl.ActivityType, sl.TimePeriod) {
		if err := s.repo.DeleteTime(ctx, sch.ID, sl.ActivityType, sl.TimePeriod); err != nil {
			return Schedule{}, err
		}
		kept := sch.Times[:0]
		for _, t := range sch.Times {
			if t.key() != sl.key() {
				kept = append(kept, t)
			}
		}
		sch.Times = kept
		return sch, nil
	}

	sl.ID = uuid.NewString()
	sl.ScheduleID = sch.ID
	if err := s.repo.AddTime(ctx, sl); err != nil {
		return Schedule{}, err
	}
	sch.Times = append(sch.Times, sl)
	sortSlots(sch.Times)
	return sch, nil
}

// SlotCount = slots por día del plan estándar (0 si no hay plan). Sin chequeo de permisos.
func (s *Service) SlotCount(ctx context.Context, petID string) (int, error) {
	sch, err := s.standing(ctx, petID)
	if err != nil {
		return 0, err
	}
	return len(sch.Times), nil
}

func (s *Service) standing(ctx context.Context, petID string) (Schedule, error) {
	sch, err := s.repo.GetStanding(ctx, petID)
	if errors.Is(err, ErrNotFound) {
		return Schedule{PetID: petID, Times: []Slot{}}, nil
	}
	if err != nil {
		return Schedule{}, err
	}
	if sch.Times == nil {
		sch.Times = []Slot{}
	}
	sortSlots(sch.Times)
	return sch, nil
}

func (s *Service) ensure(ctx context.Context, petID string) (Schedule, error) {
	sch, err := s.repo.GetStanding(ctx, petID)
	if err == nil {
		return sch, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Schedule{}, err
	}

	sch = Schedule{ID: uuid.NewString(), PetID: petID, Times: []Slot{}}
	if err := s.repo.Create(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

func (s *Service) checkOwner(ctx context.Context, petID, actorID string) error {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return ErrPetNotFound
	}
	ownerID, err := s.owners.OwnerOf(ctx, petID)
	if err != nil {
		return err
	}
	if ownerID != strings.TrimSpace(actorID) {
		return ErrForbidden
	}
	return nil
}

func parseSlot(in SlotInput) (Slot, error) {
	t, ok := ParseActivityType(strings.ToLower(strings.TrimSpace(in.ActivityType)))
	if !ok {
		return Slot{}, ErrInvalidInput
	}
	p, ok := ParsePeriod(strings.ToLower(strings.TrimSpace(in.TimePeriod)))
	if !ok {
		return Slot{}, ErrInvalidInput
	}
	return Slot{ActivityType: t, TimePeriod: p}, nil
}

var (
	periodOrder = map[TimePeriod]int{PeriodMorning: 0, PeriodAfternoon: 1, PeriodEvening: 2}
	typeOrder   = map[ActivityType]int{ActivityFeed: 0, ActivityWalk: 1, ActivityLetOut: 2}
)

// sortSlots: por período del día y luego por tipo.
func sortSlots(times []Slot) {
	sort.SliceStable(times, func(i, j int) bool {
		a, b := times[i], times[j]
		if periodOrder[a.TimePeriod] != periodOrder[b.TimePeriod] {
			return periodOrder[a.TimePeriod] < periodOrder[b.TimePeriod]
		}
		return typeOrder[a.ActivityType] < typeOrder[b.ActivityType]
	})
}
