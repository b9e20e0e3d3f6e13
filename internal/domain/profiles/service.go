package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// EnsureInput sale de los claims (o del sign-up).
type EnsureInput struct {
	UserID string
	Email  string
	Role   string
	Name   string
}

// Ensure devuelve el profile del usuario, creándolo si todavía no existe.
func (s *Service) Ensure(ctx context.Context, in EnsureInput) (Profile, error) {
	id := strings.TrimSpace(in.UserID)
	if id == "" {
		return Profile{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Profile{}, err
	}

	role, ok := ParseRole(in.Role)
	if !ok {
		role = RoleFurBoss
	}

	now := s.now()
	p = Profile{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// UpdateInput: punteros para PATCH (nil = no tocar).
type UpdateInput struct {
	Name    *string
	Phone   *string
	Address *string
	Bio     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Profile, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Profile{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.Phone != nil {
		p.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		p.Address = strings.TrimSpace(*in.Address)
	}
	if in.Bio != nil {
		p.Bio = strings.TrimSpace(*in.Bio)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) SetPhoto(ctx context.Context, id, photoURL string) (Profile, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return Profile{}, err
	}
	p.PhotoURL = strings.TrimSpace(photoURL)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SearchAgents: selector de agentes al crear/editar una sesión.
func (s *Service) SearchAgents(ctx context.Context, emailFragment string, limit int) ([]Profile, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}
	return s.repo.SearchByRole(ctx, RoleFurAgent, strings.ToLower(strings.TrimSpace(emailFragment)), limit)
}

// RoleOf y NamesByID los usan otros módulos vía interfaces chicas (sin importar este paquete).
func (s *Service) RoleOf(ctx context.Context, id string) (string, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return string(p.Role), nil
}

func (s *Service) NamesByID(ctx context.Context, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, done := out[id]; done {
			continue
		}
		p, err := s.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				// profile borrado: se muestra sin nombre
				out[id] = ""
				continue
			}
			return nil, err
		}
		out[id] = p.Name
	}
	return out, nil
}
