// Package jwtverify valida localmente los access tokens de Supabase (HS256 con el JWT secret del proyecto).
package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pettabl/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt secret is empty")

const defaultAudience = "authenticated"

type supabaseClaims struct {
	Email        string `json:"email"`
	UserMetadata struct {
		Role string `json:"role"`
		Name string `json:"name"`
	} `json:"user_metadata"`

	jwt.RegisteredClaims
}

// Verifier implementa auth.AuthVerifier sin ir a la red.
type Verifier struct {
	secret   []byte
	audience string
	leeway   time.Duration
}

func New(secret string) (*Verifier, error) {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		return nil, ErrEmptySecret
	}
	return &Verifier{
		secret:   []byte(secret),
		audience: defaultAudience,
		leeway:   30 * time.Second,
	}, nil
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	var c supabaseClaims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
	)
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", auth.ErrUnauthorized, err)
	}

	if strings.TrimSpace(c.Subject) == "" {
		return auth.Claims{}, fmt.Errorf("%w: token without sub", auth.ErrUnauthorized)
	}

	return auth.Claims{
		UserID: strings.TrimSpace(c.Subject),
		Email:  strings.TrimSpace(c.Email),
		Role:   strings.TrimSpace(c.UserMetadata.Role),
		Name:   strings.TrimSpace(c.UserMetadata.Name),
	}, nil
}
