package accounts

import (
	"context"
	"testing"

	"pettabl/internal/domain/profiles"
	"pettabl/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIDP struct {
	signedUp  []auth.SignUpInput
	signedOut []string
}

func (f *fakeIDP) SignUp(ctx context.Context, in auth.SignUpInput) (auth.Session, error) {
	for _, prev := range f.signedUp {
		if prev.Email == in.Email {
			return auth.Session{}, auth.ErrUserExists
		}
	}
	f.signedUp = append(f.signedUp, in)
	return auth.Session{
		AccessToken: "tok",
		User:        auth.Claims{UserID: "u-" + in.Email, Email: in.Email, Role: in.Role, Name: in.Name},
	}, nil
}

func (f *fakeIDP) SignIn(ctx context.Context, email, password string) (auth.Session, error) {
	if password != "secret1" {
		return auth.Session{}, auth.ErrInvalidCredentials
	}
	return auth.Session{AccessToken: "tok", User: auth.Claims{UserID: "u-" + email, Email: email, Role: "fur_agent"}}, nil
}

func (f *fakeIDP) SignOut(ctx context.Context, token string) error {
	f.signedOut = append(f.signedOut, token)
	return nil
}

type fakeProfiles struct {
	ensured []profiles.EnsureInput
}

func (f *fakeProfiles) Ensure(ctx context.Context, in profiles.EnsureInput) (profiles.Profile, error) {
	f.ensured = append(f.ensured, in)
	return profiles.Profile{ID: in.UserID}, nil
}

func TestService_SignUp_CreatesProfile(t *testing.T) {
	idp := &fakeIDP{}
	profs := &fakeProfiles{}
	svc := NewService(idp, profs)

	sess, err := svc.SignUp(context.Background(), SignUpInput{Email: " Walker@Pets.io", Password: "secret1", Role: "fur_agent", Name: "Walker"})
	require.NoError(t, err)
	assert.Equal(t, "u-walker@pets.io", sess.User.UserID)

	require.Len(t, idp.signedUp, 1)
	assert.Equal(t, "fur_agent", idp.signedUp[0].Role)
	require.Len(t, profs.ensured, 1)
	assert.Equal(t, "walker@pets.io", profs.ensured[0].Email)

	_, err = svc.SignUp(context.Background(), SignUpInput{Email: "walker@pets.io", Password: "secret1", Role: "fur_agent"})
	assert.ErrorIs(t, err, auth.ErrUserExists)
}

func TestService_SignUp_Validation(t *testing.T) {
	svc := NewService(&fakeIDP{}, &fakeProfiles{})

	cases := []SignUpInput{
		{Email: "bad", Password: "secret1", Role: "fur_boss"},
		{Email: "a@b.io", Password: "123", Role: "fur_boss"},
		{Email: "a@b.io", Password: "secret1", Role: "admin"},
	}
	for _, in := range cases {
		_, err := svc.SignUp(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%+v", in)
	}
}

func TestService_SignIn_And_SignOut(t *testing.T) {
	idp := &fakeIDP{}
	profs := &fakeProfiles{}
	svc := NewService(idp, profs)
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "a@b.io", "wrong")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	sess, err := svc.SignIn(ctx, "A@b.io", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "u-a@b.io", sess.User.UserID)
	assert.Len(t, profs.ensured, 1)

	require.NoError(t, svc.SignOut(ctx, "tok"))
	assert.Equal(t, []string{"tok"}, idp.signedOut)
	assert.ErrorIs(t, svc.SignOut(ctx, " "), auth.ErrUnauthorized)
}

func TestService_NotConfigured(t *testing.T) {
	svc := NewService(nil, &fakeProfiles{})

	_, err := svc.SignIn(context.Background(), "a@b.io", "secret1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
