// Package supabase habla con Supabase Auth (GoTrue) vía REST.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pettabl/internal/platform/httpclient"
	"pettabl/internal/ports/auth"
)

var ErrNotConfigured = errors.New("supabase auth not configured")

type Config struct {
	URL     string // https://<project>.supabase.co
	AnonKey string
	Timeout time.Duration
}

// Client implementa auth.IdentityProvider y auth.AuthVerifier.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.URL) == "" || strings.TrimSpace(cfg.AnonKey) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.NewWithBaseURL(strings.TrimSpace(cfg.URL)+"/auth/v1", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.SetHeader("apikey", strings.TrimSpace(cfg.AnonKey))
	return &Client{http: hc}, nil
}

type userMetadata struct {
	Role string `json:"role,omitempty"`
	Name string `json:"name,omitempty"`
}

type userPayload struct {
	ID       string       `json:"id"`
	Email    string       `json:"email"`
	Metadata userMetadata `json:"user_metadata"`
}

// sessionPayload cubre las dos formas de respuesta de /signup:
// sesión completa, o solo el user cuando hay confirmación por email.
type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"`
	User         *userPayload `json:"user"`

	userPayload
}

func (p sessionPayload) toSession() auth.Session {
	u := p.userPayload
	if p.User != nil {
		u = *p.User
	}
	return auth.Session{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		ExpiresIn:    p.ExpiresIn,
		User:         u.toClaims(),
	}
}

func (u userPayload) toClaims() auth.Claims {
	return auth.Claims{
		UserID: strings.TrimSpace(u.ID),
		Email:  strings.TrimSpace(u.Email),
		Role:   strings.TrimSpace(u.Metadata.Role),
		Name:   strings.TrimSpace(u.Metadata.Name),
	}
}

func (c *Client) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Session, error) {
	body := map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data":     userMetadata{Role: in.Role, Name: in.Name},
	}

	var out sessionPayload
	if err := c.http.DoJSON(ctx, http.MethodPost, "/signup", nil, body, &out); err != nil {
		return auth.Session{}, mapError(err)
	}
	return out.toSession(), nil
}

func (c *Client) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var out sessionPayload
	if err := c.http.DoJSON(ctx, http.MethodPost, "/token?grant_type=password", nil, body, &out); err != nil {
		return auth.Session{}, mapError(err)
	}
	return out.toSession(), nil
}

func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	headers := map[string]string{"Authorization": "Bearer " + accessToken}
	if err := c.http.DoJSON(ctx, http.MethodPost, "/logout", headers, nil, nil); err != nil {
		return mapError(err)
	}
	return nil
}

// Verify valida el token contra GET /user (sirve cuando no se tiene el JWT secret).
func (c *Client) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, auth.ErrUnauthorized
	}

	headers := map[string]string{"Authorization": "Bearer " + token}
	var out userPayload
	if err := c.http.DoJSON(ctx, http.MethodGet, "/user", headers, nil, &out); err != nil {
		return auth.Claims{}, mapError(err)
	}

	claims := out.toClaims()
	if claims.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user id", auth.ErrUpstream)
	}
	return claims, nil
}

func mapError(err error) error {
	var he *httpclient.HTTPError
	if !errors.As(err, &he) {
		return fmt.Errorf("%w: %v", auth.ErrUpstream, err)
	}

	body := strings.ToLower(he.Body)
	switch {
	case strings.Contains(body, "already registered"), strings.Contains(body, "user_already_exists"):
		return auth.ErrUserExists
	case strings.Contains(body, "invalid_grant"), strings.Contains(body, "invalid login credentials"):
		return auth.ErrInvalidCredentials
	case he.StatusCode == http.StatusUnauthorized, he.StatusCode == http.StatusForbidden:
		return auth.ErrUnauthorized
	default:
		return fmt.Errorf("%w: status=%d", auth.ErrUpstream, he.StatusCode)
	}
}
