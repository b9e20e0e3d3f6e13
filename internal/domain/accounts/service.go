// Package accounts expone sign-up / sign-in / sign-out sobre el proveedor de identidad
// y garantiza que exista el profile del usuario.
package accounts

import (
	"context"
	"errors"
	"strings"

	"pettabl/internal/domain/profiles"
	"pettabl/internal/ports/auth"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidInput  = errors.New("email, password (min 6) and role are required")
	ErrNotConfigured = errors.New("identity provider not configured")
)

const minPasswordLen = 6

// ProfileEnsurer lo implementa profiles.Service.
type ProfileEnsurer interface {
	Ensure(ctx context.Context, in profiles.EnsureInput) (profiles.Profile, error)
}

type Service struct {
	idp      auth.IdentityProvider
	profiles ProfileEnsurer
	validate *validator.Validate
}

// NewService acepta idp nil: las operaciones devuelven ErrNotConfigured.
func NewService(idp auth.IdentityProvider, profiles ProfileEnsurer) *Service {
	return &Service{idp: idp, profiles: profiles, validate: validator.New()}
}

type SignUpInput struct {
	Email    string
	Password string
	Role     string
	Name     string
}

// SignUp registra al usuario con role/name como metadata y crea su profile.
// Si el proveedor exige confirmar el email, la sesión vuelve sin tokens pero con el user id.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (auth.Session, error) {
	if s.idp == nil {
		return auth.Session{}, ErrNotConfigured
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	if err := s.validate.Var(email, "required,email"); err != nil || len(in.Password) < minPasswordLen {
		return auth.Session{}, ErrInvalidInput
	}
	role, ok := profiles.ParseRole(strings.TrimSpace(in.Role))
	if !ok {
		return auth.Session{}, ErrInvalidInput
	}
	name := strings.TrimSpace(in.Name)

	sess, err := s.idp.SignUp(ctx, auth.SignUpInput{
		Email:    email,
		Password: in.Password,
		Role:     string(role),
		Name:     name,
	})
	if err != nil {
		return auth.Session{}, err
	}

	if sess.User.UserID != "" {
		if _, err := s.profiles.Ensure(ctx, profiles.EnsureInput{
			UserID: sess.User.UserID,
			Email:  email,
			Role:   string(role),
			Name:   name,
		}); err != nil {
			return auth.Session{}, err
		}
	}
	return sess, nil
}

func (s *Service) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if s.idp == nil {
		return auth.Session{}, ErrNotConfigured
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return auth.Session{}, ErrInvalidInput
	}

	sess, err := s.idp.SignIn(ctx, email, password)
	if err != nil {
		return auth.Session{}, err
	}

	// usuarios creados por fuera de la API (dashboard del proveedor)
	if sess.User.UserID != "" {
		if _, err := s.profiles.Ensure(ctx, profiles.EnsureInput{
			UserID: sess.User.UserID,
			Email:  sess.User.Email,
			Role:   sess.User.Role,
			Name:   sess.User.Name,
		}); err != nil {
			return auth.Session{}, err
		}
	}
	return sess, nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	if s.idp == nil {
		return ErrNotConfigured
	}
	if strings.TrimSpace(accessToken) == "" {
		return auth.ErrUnauthorized
	}
	return s.idp.SignOut(ctx, accessToken)
}
