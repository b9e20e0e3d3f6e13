package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	// ListByOwner ordena por created_at desc (lo más nuevo primero).
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
}
