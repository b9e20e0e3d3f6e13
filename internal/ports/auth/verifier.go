package auth

import (
	"context"
	"errors"
)

// Errores comunes de los adapters de identidad.
var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already registered")
	ErrUpstream           = errors.New("identity provider error")
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// IdentityProvider cubre sign-up / sign-in / sign-out contra el proveedor externo.
type IdentityProvider interface {
	SignUp(ctx context.Context, in SignUpInput) (Session, error)
	SignIn(ctx context.Context, email, password string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
}
