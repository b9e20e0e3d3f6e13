package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"pettabl/internal/domain/sessions"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

// agents viaja como lista separada por comas (ids uuid).
const sessionSelect = `
	SELECT
		s.id, s.pet_id, s.fur_boss_id,
		s.start_date, s.end_date, s.status, s.notes,
		s.created_at, s.updated_at,
		COALESCE((
			SELECT string_agg(sa.fur_agent_id, ',' ORDER BY sa.fur_agent_id)
			FROM session_agents sa
			WHERE sa.session_id = s.id
		), '') AS agents
	FROM sessions s`

func (r *SessionsRepo) Create(ctx context.Context, s sessions.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (
			id, pet_id, fur_boss_id,
			start_date, end_date, status, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
	`,
		s.ID,
		s.PetID,
		s.OwnerID,
		dateArg(s.StartDate),
		dateArg(s.EndDate),
		string(s.Status),
		s.Notes,
		s.CreatedAt,
		s.UpdatedAt,
	); err != nil {
		return err
	}

	if err := insertAgents(ctx, tx, s.ID, s.AgentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

// Update no toca session_agents.
func (r *SessionsRepo) Update(ctx context.Context, s sessions.Session) error {
	return updateSession(ctx, r.db, s)
}

// UpdateWithAgents actualiza la fila y reemplaza session_agents en la misma tx.
func (r *SessionsRepo) UpdateWithAgents(ctx context.Context, s sessions.Session) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := updateSession(ctx, tx, s); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM session_agents WHERE session_id = $1`, s.ID); err != nil {
		return err
	}
	if err := insertAgents(ctx, tx, s.ID, s.AgentIDs); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *SessionsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sessions.ErrNotFound
	}
	return nil
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return sessions.Session{}, sessions.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, sessionSelect+` WHERE s.id = $1`, id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return sessions.Session{}, sessions.ErrNotFound
	}
	return s, err
}

func (r *SessionsRepo) ListByPet(ctx context.Context, petID string) ([]sessions.Session, error) {
	return r.list(ctx, ` WHERE s.pet_id = $1`, petID)
}

func (r *SessionsRepo) ListByOwner(ctx context.Context, ownerID string) ([]sessions.Session, error) {
	return r.list(ctx, ` WHERE s.fur_boss_id = $1`, ownerID)
}

func (r *SessionsRepo) ListByAgent(ctx context.Context, agentID string) ([]sessions.Session, error) {
	return r.list(ctx, ` WHERE EXISTS (
		SELECT 1 FROM session_agents x
		WHERE x.session_id = s.id AND x.fur_agent_id = $1
	)`, agentID)
}

func (r *SessionsRepo) IsAgentForPet(ctx context.Context, petID, agentID string) (bool, error) {
	var ok bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1
			FROM sessions s
			JOIN session_agents sa ON sa.session_id = s.id
			WHERE s.pet_id = $1 AND sa.fur_agent_id = $2
		)
	`, petID, agentID).Scan(&ok)
	return ok, err
}

func (r *SessionsRepo) list(ctx context.Context, where string, arg string) ([]sessions.Session, error) {
	rows, err := r.db.QueryContext(ctx, sessionSelect+where+` ORDER BY s.created_at DESC`, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]sessions.Session, 0)
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func updateSession(ctx context.Context, db execer, s sessions.Session) error {
	res, err := db.ExecContext(ctx, `
		UPDATE sessions
		SET
			start_date = $2,
			end_date = $3,
			status = $4,
			notes = $5,
			updated_at = $6
		WHERE id = $1
	`,
		s.ID,
		dateArg(s.StartDate),
		dateArg(s.EndDate),
		string(s.Status),
		s.Notes,
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sessions.ErrNotFound
	}
	return nil
}

func insertAgents(ctx context.Context, tx *sql.Tx, sessionID string, agentIDs []string) error {
	for _, id := range agentIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO session_agents (session_id, fur_agent_id)
			VALUES ($1, $2)
			ON CONFLICT DO NOTHING
		`, sessionID, id); err != nil {
			return err
		}
	}
	return nil
}

func scanSession(s scanner) (sessions.Session, error) {
	var (
		out        sessions.Session
		start, end time.Time
		status     string
		agents     string
	)
	if err := s.Scan(
		&out.ID,
		&out.PetID,
		&out.OwnerID,
		&start,
		&end,
		&status,
		&out.Notes,
		&out.CreatedAt,
		&out.UpdatedAt,
		&agents,
	); err != nil {
		return sessions.Session{}, err
	}

	out.StartDate = toDate(start)
	out.EndDate = toDate(end)
	out.Status = sessions.Status(status)
	out.AgentIDs = []string{}
	if agents != "" {
		out.AgentIDs = strings.Split(agents, ",")
	}
	return out, nil
}
