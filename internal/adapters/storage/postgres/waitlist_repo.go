package postgres

import (
	"context"
	"database/sql"

	"pettabl/internal/domain/waitlist"
)

// WaitlistRepo guarda las altas en la tabla waitlist (email único).
type WaitlistRepo struct {
	db *sql.DB
}

func NewWaitlistRepo(db *sql.DB) *WaitlistRepo {
	return &WaitlistRepo{db: db}
}

func (r *WaitlistRepo) Add(ctx context.Context, e waitlist.Entry) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO waitlist (id, name, email, source, context, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, e.ID, e.Name, e.Email, e.Source, e.Context, e.CreatedAt)
	if isUniqueViolation(err) {
		return waitlist.ErrAlreadyJoined
	}
	return err
}
