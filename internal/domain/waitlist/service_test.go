package waitlist

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	entries []Entry
	byEmail map[string]bool
}

func (s *recordingSink) Add(ctx context.Context, e Entry) error {
	if s.byEmail == nil {
		s.byEmail = map[string]bool{}
	}
	if s.byEmail[e.Email] {
		return ErrAlreadyJoined
	}
	s.byEmail[e.Email] = true
	s.entries = append(s.entries, e)
	return nil
}

func TestService_Join_NormalizesAndDefaults(t *testing.T) {
	sink := &recordingSink{}
	svc := NewService(sink)

	e, err := svc.Join(context.Background(), JoinInput{Name: "  Ana ", Email: " Ana@Example.COM "})
	require.NoError(t, err)
	assert.Equal(t, "Ana", e.Name)
	assert.Equal(t, "ana@example.com", e.Email)
	assert.Equal(t, "api", e.Source)
	require.Len(t, sink.entries, 1)

	_, err = svc.Join(context.Background(), JoinInput{Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, ErrAlreadyJoined)
}

func TestService_Join_Validation(t *testing.T) {
	svc := NewService(&recordingSink{})

	cases := []JoinInput{
		{Name: "", Email: "a@b.io"},
		{Name: "Ana", Email: ""},
		{Name: "Ana", Email: "not-an-email"},
	}
	for _, in := range cases {
		_, err := svc.Join(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input=%+v", in)
	}
}
