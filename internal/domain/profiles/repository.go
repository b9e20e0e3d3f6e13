package profiles

import "context"

type Repository interface {
	Create(ctx context.Context, p Profile) error
	Update(ctx context.Context, p Profile) error
	GetByID(ctx context.Context, id string) (Profile, error)
	// SearchByRole filtra por role y match parcial (case-insensitive) del email.
	SearchByRole(ctx context.Context, role Role, emailFragment string, limit int) ([]Profile, error)
}
