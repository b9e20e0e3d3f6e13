package profiles

import (
	"context"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepo struct {
	byID map[string]Profile
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Profile{}}
}

func (r *testRepo) Create(ctx context.Context, p Profile) error {
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Profile) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) SearchByRole(ctx context.Context, role Role, frag string, limit int) ([]Profile, error) {
	out := make([]Profile, 0)
	for _, p := range r.byID {
		if p.Role == role && strings.Contains(strings.ToLower(p.Email), frag) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func TestService_Ensure_CreatesOnce(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Ensure(context.Background(), EnsureInput{
		UserID: "agent-1",
		Email:  "  Walker@Example.com ",
		Role:   "fur_agent",
		Name:   "Walker",
	})
	require.NoError(t, err)
	assert.Equal(t, RoleFurAgent, p.Role)
	assert.Equal(t, "walker@example.com", p.Email)
	assert.Equal(t, now, p.CreatedAt)

	// segunda llamada no pisa datos existentes
	again, err := svc.Ensure(context.Background(), EnsureInput{UserID: "agent-1", Role: "fur_boss"})
	require.NoError(t, err)
	assert.Equal(t, RoleFurAgent, again.Role)
	assert.Len(t, repo.byID, 1)
}

func TestService_Ensure_DefaultsToBoss(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Ensure(context.Background(), EnsureInput{UserID: "u-1", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, RoleFurBoss, p.Role)
}

func TestService_Update_PatchSemantics(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	_, err := svc.Ensure(context.Background(), EnsureInput{UserID: "u-1", Name: "Ana"})
	require.NoError(t, err)

	phone := " 555-0101 "
	p, err := svc.Update(context.Background(), "u-1", UpdateInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.Name)
	assert.Equal(t, "555-0101", p.Phone)

	empty := "   "
	_, err = svc.Update(context.Background(), "u-1", UpdateInput{Name: &empty})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Update(context.Background(), "missing", UpdateInput{Phone: &phone})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_SearchAgents_OnlyAgentsAndClampsLimit(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i, email := range []string{"amy@pets.io", "bob@pets.io", "boss@pets.io"} {
		role := "fur_agent"
		if i == 2 {
			role = "fur_boss"
		}
		_, err := svc.Ensure(ctx, EnsureInput{UserID: email, Email: email, Role: role})
		require.NoError(t, err)
	}

	got, err := svc.SearchAgents(ctx, "PETS", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, p := range got {
		assert.Equal(t, RoleFurAgent, p.Role)
	}

	got, err = svc.SearchAgents(ctx, "", 1)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_NamesByID_ToleratesMissing(t *testing.T) {
	svc := NewService(newTestRepo())
	_, err := svc.Ensure(context.Background(), EnsureInput{UserID: "a1", Name: "Amy"})
	require.NoError(t, err)

	names, err := svc.NamesByID(context.Background(), []string{"a1", "ghost", "a1"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a1": "Amy", "ghost": ""}, names)
}
