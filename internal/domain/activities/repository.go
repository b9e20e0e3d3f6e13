package activities

import (
	"context"

	"cloud.google.com/go/civil"
)

type Repository interface {
	// Create devuelve ErrConflict si ya existe (session, date, type, period).
	Create(ctx context.Context, a Activity) error
	GetByID(ctx context.Context, id string) (Activity, error)
	Delete(ctx context.Context, id string) error

	// ListBySession: created_at desc. date nil = todas.
	ListBySession(ctx context.Context, sessionID string, date *civil.Date) ([]Activity, error)
	ListPhotosByPet(ctx context.Context, petID string, limit int) ([]Activity, error)

	CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error)
}
