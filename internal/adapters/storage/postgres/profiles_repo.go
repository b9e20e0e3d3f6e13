package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pettabl/internal/domain/profiles"
)

type ProfilesRepo struct {
	db *sql.DB
}

func NewProfilesRepo(db *sql.DB) *ProfilesRepo {
	return &ProfilesRepo{db: db}
}

const profileColumns = `
	id, name, email, role,
	phone, address, bio, photo_url,
	paw_points, created_at, updated_at`

func (r *ProfilesRepo) Create(ctx context.Context, p profiles.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.Name,
		p.Email,
		string(p.Role),
		p.Phone,
		p.Address,
		p.Bio,
		p.PhotoURL,
		p.PawPoints,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *ProfilesRepo) Update(ctx context.Context, p profiles.Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET
			name = $2,
			email = $3,
			role = $4,
			phone = $5,
			address = $6,
			bio = $7,
			photo_url = $8,
			paw_points = $9,
			updated_at = $10
		WHERE id = $1
	`,
		p.ID,
		p.Name,
		p.Email,
		string(p.Role),
		p.Phone,
		p.Address,
		p.Bio,
		p.PhotoURL,
		p.PawPoints,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return profiles.ErrNotFound
	}
	return nil
}

func (r *ProfilesRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return profiles.Profile{}, profiles.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if errors.Is(err, sql.ErrNoRows) {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return p, err
}

func (r *ProfilesRepo) SearchByRole(ctx context.Context, role profiles.Role, emailFragment string, limit int) ([]profiles.Profile, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+profileColumns+`
		FROM profiles
		WHERE role = $1 AND lower(email) LIKE '%' || lower($2) || '%' ESCAPE '\'
		ORDER BY email ASC
		LIMIT $3
	`, string(role), likeEscape(emailFragment), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profiles.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likeEscape hace que % y _ del texto buscado matcheen literal.
func likeEscape(s string) string {
	return likeEscaper.Replace(s)
}

func scanProfile(s scanner) (profiles.Profile, error) {
	var (
		p    profiles.Profile
		role string
	)
	err := s.Scan(
		&p.ID,
		&p.Name,
		&p.Email,
		&role,
		&p.Phone,
		&p.Address,
		&p.Bio,
		&p.PhotoURL,
		&p.PawPoints,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	p.Role = profiles.Role(role)
	return p, err
}
