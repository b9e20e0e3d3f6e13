package dashboard

import (
	"context"
	"errors"
	"strings"

	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/sessions"

	"cloud.google.com/go/civil"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("tab must be current or upcoming")
	ErrNotFound     = errors.New("session not found")
	ErrForbidden    = errors.New("forbidden")
)

// Tab del dashboard del agente.
type Tab string

const (
	TabCurrent  Tab = "current"
	TabUpcoming Tab = "upcoming"
)

func ParseTab(s string) (Tab, error) {
	switch Tab(strings.ToLower(strings.TrimSpace(s))) {
	case "", TabCurrent:
		return TabCurrent, nil
	case TabUpcoming:
		return TabUpcoming, nil
	}
	return "", ErrInvalidInput
}

// Máximo de sesiones cargándose en paralelo por request.
const fanOutLimit = 8

type SessionSource interface {
	ListByAgent(ctx context.Context, agentID string) ([]sessions.Session, error)
	Get(ctx context.Context, sessionID, viewerID string) (sessions.Session, error)
	Today() civil.Date
}

type PetSource interface {
	GetByID(ctx context.Context, petID string) (pets.Pet, error)
}

type SlotCounter interface {
	SlotCount(ctx context.Context, petID string) (int, error)
}

type ActivityCounter interface {
	CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error)
}

type Service struct {
	sessions   SessionSource
	pets       PetSource
	slots      SlotCounter
	activities ActivityCounter
}

func NewService(sessions SessionSource, pets PetSource, slots SlotCounter, activities ActivityCounter) *Service {
	return &Service{
		sessions:   sessions,
		pets:       pets,
		slots:      slots,
		activities: activities,
	}
}

// Assignment es una tarjeta del dashboard del agente.
type Assignment struct {
	SessionID   string
	PetID       string
	PetName     string
	PetPhotoURL string
	StartDate   civil.Date
	EndDate     civil.Date
	Status      sessions.Status

	ActivitiesToday      int
	TotalActivitiesToday int
	Days                 []Day

	IsLastDayToday bool
	IsUpcoming     bool
}

// AgentAssignments arma las tarjetas de las sesiones del agente filtradas por tab.
// Upcoming = la sesión empieza después de hoy; current = el resto.
func (s *Service) AgentAssignments(ctx context.Context, agentID string, tab Tab) ([]Assignment, error) {
	items, err := s.sessions.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, err
	}

	today := s.sessions.Today()

	selected := make([]sessions.Session, 0, len(items))
	for _, it := range items {
		upcoming := it.StartDate.After(today)
		if upcoming == (tab == TabUpcoming) {
			selected = append(selected, it)
		}
	}

	out := make([]Assignment, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutLimit)

	for i, sess := range selected {
		g.Go(func() error {
			a, err := s.build(gctx, sess, today)
			if err != nil {
				return err
			}
			out[i] = a
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Progress: estado por día de una sesión (owner o agente).
func (s *Service) Progress(ctx context.Context, sessionID, viewerID string) (Assignment, error) {
	sess, err := s.sessions.Get(ctx, sessionID, viewerID)
	if err != nil {
		switch {
		case errors.Is(err, sessions.ErrNotFound):
			return Assignment{}, ErrNotFound
		case errors.Is(err, sessions.ErrForbidden):
			return Assignment{}, ErrForbidden
		}
		return Assignment{}, err
	}
	return s.build(ctx, sess, s.sessions.Today())
}

func (s *Service) build(ctx context.Context, sess sessions.Session, today civil.Date) (Assignment, error) {
	a := Assignment{
		SessionID:      sess.ID,
		PetID:          sess.PetID,
		StartDate:      sess.StartDate,
		EndDate:        sess.EndDate,
		Status:         sess.Status,
		IsLastDayToday: sess.EndDate == today,
		IsUpcoming:     sess.StartDate.After(today),
	}

	// mascota borrada a mitad de camino: la tarjeta sale sin nombre
	if p, err := s.pets.GetByID(ctx, sess.PetID); err == nil {
		a.PetName = p.Name
		a.PetPhotoURL = p.PhotoURL
	} else if !errors.Is(err, pets.ErrNotFound) {
		return Assignment{}, err
	}

	slots, err := s.slots.SlotCount(ctx, sess.PetID)
	if err != nil {
		return Assignment{}, err
	}

	counts, err := s.activities.CountByDay(ctx, sess.ID)
	if err != nil {
		return Assignment{}, err
	}

	a.TotalActivitiesToday = slots
	a.ActivitiesToday = counts[today]
	a.Days = DayStatuses(sess.StartDate, sess.EndDate, today, slots, counts)
	return a, nil
}
