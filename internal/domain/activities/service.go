package activities

import (
	"context"
	"errors"
	"strings"
	"time"

	"pettabl/internal/domain/schedules"
	"pettabl/internal/domain/sessions"
	"pettabl/internal/platform/dates"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrOutOfRange      = errors.New("date outside session range")
	ErrNotFound        = errors.New("activity not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrPetNotFound     = sessions.ErrPetNotFound
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("activity already logged")
)

const (
	defaultPhotoLimit = 30
	maxPhotoLimit     = 100
)

// SessionFinder: lectura sin permisos (sessions.Service.Find).
type SessionFinder interface {
	Find(ctx context.Context, sessionID string) (sessions.Session, error)
}

// ViewAccess: owner o agente asignado a la mascota.
type ViewAccess interface {
	CanViewPet(ctx context.Context, petID, userID string) (bool, error)
}

type Service struct {
	repo     Repository
	sessions SessionFinder
	access   ViewAccess

	now func() time.Time
	loc *time.Location
}

func NewService(repo Repository, sessions SessionFinder, access ViewAccess, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo:     repo,
		sessions: sessions,
		access:   access,
		now:      time.Now,
		loc:      loc,
	}
}

type LogInput struct {
	ActivityType string
	TimePeriod   string
	Date         *civil.Date // nil = hoy
	PhotoURL     string
}

// CheckCaretaker valida que actorID sea agente de la sesión. El handler lo usa antes de subir la foto.
func (s *Service) CheckCaretaker(ctx context.Context, sessionID, actorID string) (sessions.Session, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return sessions.Session{}, err
	}
	if !sess.HasAgent(strings.TrimSpace(actorID)) {
		return sessions.Session{}, ErrForbidden
	}
	return sess, nil
}

// Log registra la completación de un slot.
func (s *Service) Log(ctx context.Context, sessionID, actorID string, in LogInput) (Activity, error) {
	sess, err := s.CheckCaretaker(ctx, sessionID, actorID)
	if err != nil {
		return Activity{}, err
	}

	at, ok := schedules.ParseActivityType(strings.ToLower(strings.TrimSpace(in.ActivityType)))
	if !ok {
		return Activity{}, ErrInvalidInput
	}
	period, ok := schedules.ParsePeriod(strings.ToLower(strings.TrimSpace(in.TimePeriod)))
	if !ok {
		return Activity{}, ErrInvalidInput
	}

	now := s.now()
	day := dates.Today(now, s.loc)
	if in.Date != nil {
		day = *in.Date
	}
	if !day.IsValid() {
		return Activity{}, ErrInvalidInput
	}
	if !sess.Contains(day) {
		return Activity{}, ErrOutOfRange
	}

	a := Activity{
		ID:           uuid.NewString(),
		SessionID:    sess.ID,
		PetID:        sess.PetID,
		CaretakerID:  strings.TrimSpace(actorID),
		ActivityType: at,
		TimePeriod:   period,
		Date:         day,
		PhotoURL:     strings.TrimSpace(in.PhotoURL),
		CreatedAt:    now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Activity{}, err
	}
	return a, nil
}

// Delete ("desmarcar"): el caretaker que la registró o el owner de la sesión.
// Devuelve la fila borrada para que el caller limpie la foto.
func (s *Service) Delete(ctx context.Context, sessionID, activityID, actorID string) (Activity, error) {
	a, err := s.repo.GetByID(ctx, strings.TrimSpace(activityID))
	if err != nil {
		return Activity{}, err
	}
	if a.SessionID != sessionID {
		return Activity{}, ErrNotFound
	}

	if a.CaretakerID != actorID {
		sess, err := s.findSession(ctx, sessionID)
		if err != nil {
			return Activity{}, err
		}
		if sess.OwnerID != actorID {
			return Activity{}, ErrForbidden
		}
	}

	if err := s.repo.Delete(ctx, a.ID); err != nil {
		return Activity{}, err
	}
	return a, nil
}

// ListBySession: owner o agentes de la sesión.
func (s *Service) ListBySession(ctx context.Context, sessionID, viewerID string, date *civil.Date) ([]Activity, error) {
	sess, err := s.findSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.OwnerID != viewerID && !sess.HasAgent(viewerID) {
		return nil, ErrForbidden
	}
	return s.repo.ListBySession(ctx, sess.ID, date)
}

// ListPhotosByPet: galería del detalle de la mascota.
func (s *Service) ListPhotosByPet(ctx context.Context, petID, viewerID string, limit int) ([]Activity, error) {
	ok, err := s.access.CanViewPet(ctx, petID, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if limit <= 0 {
		limit = defaultPhotoLimit
	}
	if limit > maxPhotoLimit {
		limit = maxPhotoLimit
	}
	return s.repo.ListPhotosByPet(ctx, petID, limit)
}

// CountByDay: completaciones por día de una sesión (sin permisos; lo usa dashboard).
func (s *Service) CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error) {
	return s.repo.CountByDay(ctx, sessionID)
}

func (s *Service) findSession(ctx context.Context, sessionID string) (sessions.Session, error) {
	sess, err := s.sessions.Find(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sessions.ErrNotFound) {
			return sessions.Session{}, ErrSessionNotFound
		}
		return sessions.Session{}, err
	}
	return sess, nil
}
