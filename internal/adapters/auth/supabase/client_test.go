package supabase

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pettabl/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoTrue(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "anon", r.Header.Get("apikey"))
		var body struct {
			Email string `json:"email"`
			Data  struct {
				Role string `json:"role"`
				Name string `json:"name"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body.Email == "taken@pets.io" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`))
			return
		}
		// confirmación pendiente: GoTrue devuelve solo el user
		_, _ = w.Write([]byte(`{"id":"u-1","email":"` + body.Email + `","user_metadata":{"role":"` + body.Data.Role + `","name":"` + body.Data.Name + `"}}`))
	})

	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["password"] != "secret1" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"u-1","email":"a@pets.io","user_metadata":{"role":"fur_agent","name":"Amy"}}}`))
	})

	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer at" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@pets.io","user_metadata":{"role":"fur_agent","name":"Amy"}}`))
	})

	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer at", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_SignUpAndSignIn(t *testing.T) {
	srv := newGoTrue(t)
	c, err := NewClient(Config{URL: srv.URL, AnonKey: "anon"})
	require.NoError(t, err)
	ctx := context.Background()

	sess, err := c.SignUp(ctx, auth.SignUpInput{Email: "new@pets.io", Password: "secret1", Role: "fur_boss", Name: "Bo"})
	require.NoError(t, err)
	assert.Empty(t, sess.AccessToken)
	assert.Equal(t, auth.Claims{UserID: "u-1", Email: "new@pets.io", Role: "fur_boss", Name: "Bo"}, sess.User)

	_, err = c.SignUp(ctx, auth.SignUpInput{Email: "taken@pets.io", Password: "secret1"})
	assert.ErrorIs(t, err, auth.ErrUserExists)

	sess, err = c.SignIn(ctx, "a@pets.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "at", sess.AccessToken)
	assert.Equal(t, 3600, sess.ExpiresIn)
	assert.Equal(t, "fur_agent", sess.User.Role)

	_, err = c.SignIn(ctx, "a@pets.io", "nope")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestClient_VerifyAndSignOut(t *testing.T) {
	srv := newGoTrue(t)
	c, err := NewClient(Config{URL: srv.URL, AnonKey: "anon"})
	require.NoError(t, err)
	ctx := context.Background()

	claims, err := c.Verify(ctx, "at")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "Amy", claims.Name)

	_, err = c.Verify(ctx, "expired")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	assert.NoError(t, c.SignOut(ctx, "at"))
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{URL: "https://x.supabase.co"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}
