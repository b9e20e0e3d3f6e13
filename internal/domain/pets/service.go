package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("pet not found")
	ErrForbidden     = errors.New("forbidden")
	ErrOwnerNotFound = errors.New("owner profile not found")
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

type CreateInput struct {
	Name            string
	PetType         string
	Breed           string
	Age             *int
	FoodPreferences string
	MedicalInfo     string
	VetContact      string
}

func (s *Service) Create(ctx context.Context, ownerID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	petType := PetType(strings.ToLower(strings.TrimSpace(in.PetType)))
	if petType == "" {
		petType = PetTypeDog
	}

	now := s.now()
	p := Pet{
		ID:              uuid.NewString(),
		OwnerID:         ownerID,
		Name:            strings.TrimSpace(in.Name),
		PetType:         petType,
		Breed:           strings.TrimSpace(in.Breed),
		Age:             in.Age,
		FoodPreferences: strings.TrimSpace(in.FoodPreferences),
		MedicalInfo:     strings.TrimSpace(in.MedicalInfo),
		VetContact:      strings.TrimSpace(in.VetContact),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// OwnerOf expone el owner de una mascota.
// Lo usan sessions/schedules/activities sin importar este paquete.
func (s *Service) OwnerOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.OwnerID, nil
}

// AgePatch distingue "age ausente" de "age: null" (limpiar).
type AgePatch struct {
	Present bool
	Value   *int
}

type UpdateInput struct {
	Name            *string
	PetType         *string
	Breed           *string
	Age             AgePatch
	FoodPreferences *string
	MedicalInfo     *string
	VetContact      *string
}

// Update: solo el owner edita el perfil de la mascota.
func (s *Service) Update(ctx context.Context, petID, actorID string, in UpdateInput) (Pet, error) {
	p, err := s.ownedBy(ctx, petID, actorID)
	if err != nil {
		return Pet{}, err
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return Pet{}, ErrInvalidInput
		}
		p.Name = name
	}
	if in.PetType != nil {
		pt := PetType(strings.ToLower(strings.TrimSpace(*in.PetType)))
		if pt == "" {
			return Pet{}, ErrInvalidInput
		}
		p.PetType = pt
	}
	if in.Breed != nil {
		p.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Age.Present {
		if in.Age.Value != nil && *in.Age.Value < 0 {
			return Pet{}, ErrInvalidInput
		}
		p.Age = in.Age.Value
	}
	if in.FoodPreferences != nil {
		p.FoodPreferences = strings.TrimSpace(*in.FoodPreferences)
	}
	if in.MedicalInfo != nil {
		p.MedicalInfo = strings.TrimSpace(*in.MedicalInfo)
	}
	if in.VetContact != nil {
		p.VetContact = strings.TrimSpace(*in.VetContact)
	}

	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) SetPhoto(ctx context.Context, petID, actorID, photoURL string) (Pet, error) {
	p, err := s.ownedBy(ctx, petID, actorID)
	if err != nil {
		return Pet{}, err
	}
	p.PhotoURL = strings.TrimSpace(photoURL)
	p.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Delete borra la mascota; sesiones, schedules y actividades caen por FK (cascade).
func (s *Service) Delete(ctx context.Context, petID, actorID string) error {
	if _, err := s.ownedBy(ctx, petID, actorID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

func (s *Service) ownedBy(ctx context.Context, petID, actorID string) (Pet, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerID != strings.TrimSpace(actorID) {
		return Pet{}, ErrForbidden
	}
	return p, nil
}

// NameOf para joins livianos (sesiones, dashboard).
func (s *Service) NameOf(ctx context.Context, petID string) (string, error) {
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return "", err
	}
	return p.Name, nil
}
