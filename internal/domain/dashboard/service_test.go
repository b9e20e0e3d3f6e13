package dashboard

import (
	"context"
	"errors"
	"testing"

	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/sessions"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSessions struct {
	today civil.Date
	items []sessions.Session
}

func (f fakeSessions) ListByAgent(ctx context.Context, agentID string) ([]sessions.Session, error) {
	out := make([]sessions.Session, 0)
	for _, s := range f.items {
		if s.HasAgent(agentID) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f fakeSessions) Get(ctx context.Context, id, viewerID string) (sessions.Session, error) {
	for _, s := range f.items {
		if s.ID != id {
			continue
		}
		if s.OwnerID != viewerID && !s.HasAgent(viewerID) {
			return sessions.Session{}, sessions.ErrForbidden
		}
		return s, nil
	}
	return sessions.Session{}, sessions.ErrNotFound
}

func (f fakeSessions) Today() civil.Date { return f.today }

type fakePets map[string]pets.Pet

func (f fakePets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	p, ok := f[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

type fakeSlots map[string]int

func (f fakeSlots) SlotCount(ctx context.Context, petID string) (int, error) {
	return f[petID], nil
}

type fakeCounts map[string]map[civil.Date]int

func (f fakeCounts) CountByDay(ctx context.Context, sessionID string) (map[civil.Date]int, error) {
	if sessionID == "broken" {
		return nil, errors.New("db down")
	}
	return f[sessionID], nil
}

func newTestService(items ...sessions.Session) *Service {
	return NewService(
		fakeSessions{today: june(2), items: items},
		fakePets{"pet-1": {ID: "pet-1", Name: "Rex", PhotoURL: "https://cdn/rex.jpg"}},
		fakeSlots{"pet-1": 2},
		fakeCounts{"s-now": {june(1): 2, june(2): 1}},
	)
}

func TestParseTab(t *testing.T) {
	tab, err := ParseTab("")
	require.NoError(t, err)
	assert.Equal(t, TabCurrent, tab)

	tab, err = ParseTab(" Upcoming ")
	require.NoError(t, err)
	assert.Equal(t, TabUpcoming, tab)

	_, err = ParseTab("past")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_AgentAssignments_SplitsTabs(t *testing.T) {
	svc := newTestService(
		sessions.Session{ID: "s-now", PetID: "pet-1", OwnerID: "boss-1", StartDate: june(1), EndDate: june(3), Status: sessions.StatusActive, AgentIDs: []string{"agent-1"}},
		sessions.Session{ID: "s-later", PetID: "pet-1", OwnerID: "boss-1", StartDate: june(10), EndDate: june(12), Status: sessions.StatusPlanned, AgentIDs: []string{"agent-1"}},
		sessions.Session{ID: "s-other", PetID: "pet-1", OwnerID: "boss-1", StartDate: june(1), EndDate: june(2), AgentIDs: []string{"agent-2"}},
	)
	ctx := context.Background()

	current, err := svc.AgentAssignments(ctx, "agent-1", TabCurrent)
	require.NoError(t, err)
	require.Len(t, current, 1)

	a := current[0]
	assert.Equal(t, "s-now", a.SessionID)
	assert.Equal(t, "Rex", a.PetName)
	assert.Equal(t, 1, a.ActivitiesToday)
	assert.Equal(t, 2, a.TotalActivitiesToday)
	assert.False(t, a.IsLastDayToday)
	assert.False(t, a.IsUpcoming)

	if diff := cmp.Diff([]DayStatus{DayComplete, DayPartial, DayFuture}, statuses(a.Days)); diff != "" {
		t.Fatalf("day statuses mismatch (-want +got):\n%s", diff)
	}

	upcoming, err := svc.AgentAssignments(ctx, "agent-1", TabUpcoming)
	require.NoError(t, err)
	require.Len(t, upcoming, 1)
	assert.Equal(t, "s-later", upcoming[0].SessionID)
	assert.True(t, upcoming[0].IsUpcoming)
	assert.Equal(t, []DayStatus{DayFuture, DayFuture, DayFuture}, statuses(upcoming[0].Days))
}

func TestService_AgentAssignments_PropagatesErrors(t *testing.T) {
	svc := newTestService(
		sessions.Session{ID: "broken", PetID: "pet-1", StartDate: june(1), EndDate: june(2), AgentIDs: []string{"agent-1"}},
	)

	_, err := svc.AgentAssignments(context.Background(), "agent-1", TabCurrent)
	assert.Error(t, err)
}

func TestService_Progress(t *testing.T) {
	svc := newTestService(
		sessions.Session{ID: "s-now", PetID: "gone", OwnerID: "boss-1", StartDate: june(1), EndDate: june(2), AgentIDs: []string{"agent-1"}},
	)
	ctx := context.Background()

	a, err := svc.Progress(ctx, "s-now", "boss-1")
	require.NoError(t, err)
	assert.Empty(t, a.PetName)
	assert.True(t, a.IsLastDayToday)
	// sin plan: fallback complete/future
	assert.Equal(t, []DayStatus{DayComplete, DayComplete}, statuses(a.Days))

	_, err = svc.Progress(ctx, "s-now", "stranger")
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Progress(ctx, "missing", "boss-1")
	assert.ErrorIs(t, err, ErrNotFound)
}
