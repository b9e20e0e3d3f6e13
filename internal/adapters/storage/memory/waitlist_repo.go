package memory

import (
	"context"

	"pettabl/internal/domain/waitlist"
)

type waitlistRepo struct {
	db *DB
}

// NewWaitlistRepo implementa waitlist.Sink.
func NewWaitlistRepo(db *DB) waitlist.Sink {
	return &waitlistRepo{db: db}
}

func (r *waitlistRepo) Add(ctx context.Context, e waitlist.Entry) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, exists := r.db.waitlist[e.Email]; exists {
		return waitlist.ErrAlreadyJoined
	}
	r.db.waitlist[e.Email] = e
	return nil
}
