package memory

import (
	"context"
	"testing"
	"time"

	"pettabl/internal/domain/activities"
	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/profiles"
	"pettabl/internal/domain/schedules"
	"pettabl/internal/domain/sessions"
	"pettabl/internal/domain/waitlist"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seed(t *testing.T) (*DB, context.Context) {
	t.Helper()
	db := NewDB()
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, NewProfileRepo(db).Create(ctx, profiles.Profile{ID: "boss-1", Email: "boss@example.com", Role: profiles.RoleFurBoss, CreatedAt: now}))
	require.NoError(t, NewPetRepo(db).Create(ctx, pets.Pet{ID: "pet-1", OwnerID: "boss-1", Name: "Milo", CreatedAt: now}))
	require.NoError(t, NewSessionRepo(db).Create(ctx, sessions.Session{
		ID: "s-1", PetID: "pet-1", OwnerID: "boss-1",
		StartDate: civil.Date{Year: 2024, Month: 6, Day: 1},
		EndDate:   civil.Date{Year: 2024, Month: 6, Day: 3},
		AgentIDs:  []string{"agent-1"},
		CreatedAt: now,
	}))
	return db, ctx
}

func TestSessionRepo_AgentsLiveOutsideTheRow(t *testing.T) {
	db, ctx := seed(t)
	repo := NewSessionRepo(db)

	s, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"agent-1"}, s.AgentIDs)

	// Update no cambia asignaciones
	s.Notes = "llaves en la maceta"
	s.AgentIDs = nil
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, "llaves en la maceta", got.Notes)
	assert.Equal(t, []string{"agent-1"}, got.AgentIDs)

	got.Notes = "otra nota"
	got.AgentIDs = []string{"agent-2"}
	require.NoError(t, repo.UpdateWithAgents(ctx, got))
	mine, err := repo.ListByAgent(ctx, "agent-2")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "otra nota", mine[0].Notes)

	ok, err := repo.IsAgentForPet(ctx, "pet-1", "agent-1")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, repo.UpdateWithAgents(ctx, sessions.Session{ID: "nope"}), sessions.ErrNotFound)
}

func TestPetRepo_Create_RequiresOwnerProfile(t *testing.T) {
	db, ctx := seed(t)
	repo := NewPetRepo(db)

	err := repo.Create(ctx, pets.Pet{ID: "pet-2", OwnerID: "ghost", Name: "Luna"})
	assert.ErrorIs(t, err, pets.ErrOwnerNotFound)

	_, err = repo.GetByID(ctx, "pet-2")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestActivityRepo_UniquePerSlotAndDay(t *testing.T) {
	db, ctx := seed(t)
	repo := NewActivityRepo(db)
	day := civil.Date{Year: 2024, Month: 6, Day: 2}

	a := activities.Activity{
		ID: "a-1", SessionID: "s-1", PetID: "pet-1", CaretakerID: "agent-1",
		ActivityType: schedules.ActivityFeed, TimePeriod: schedules.PeriodMorning, Date: day,
	}
	require.NoError(t, repo.Create(ctx, a))

	a.ID = "a-2"
	assert.ErrorIs(t, repo.Create(ctx, a), activities.ErrConflict)

	a.ID = "a-3"
	a.TimePeriod = schedules.PeriodEvening
	a.PhotoURL = "http://x/files/activity-photos/a.jpg"
	require.NoError(t, repo.Create(ctx, a))

	counts, err := repo.CountByDay(ctx, "s-1")
	require.NoError(t, err)
	assert.Equal(t, map[civil.Date]int{day: 2}, counts)

	photos, err := repo.ListPhotosByPet(ctx, "pet-1", 10)
	require.NoError(t, err)
	require.Len(t, photos, 1)
	assert.Equal(t, "a-3", photos[0].ID)
}

func TestPetRepo_Delete_Cascades(t *testing.T) {
	db, ctx := seed(t)

	require.NoError(t, NewScheduleRepo(db).Create(ctx, schedules.Schedule{ID: "sch-1", PetID: "pet-1"}))
	require.NoError(t, NewActivityRepo(db).Create(ctx, activities.Activity{
		ID: "a-1", SessionID: "s-1", PetID: "pet-1",
		ActivityType: schedules.ActivityWalk, TimePeriod: schedules.PeriodMorning,
		Date: civil.Date{Year: 2024, Month: 6, Day: 1},
	}))

	require.NoError(t, NewPetRepo(db).Delete(ctx, "pet-1"))

	_, err := NewSessionRepo(db).GetByID(ctx, "s-1")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
	_, err = NewScheduleRepo(db).GetStanding(ctx, "pet-1")
	assert.ErrorIs(t, err, schedules.ErrNotFound)
	_, err = NewActivityRepo(db).GetByID(ctx, "a-1")
	assert.ErrorIs(t, err, activities.ErrNotFound)
}

func TestScheduleRepo_ToggleTimes(t *testing.T) {
	db, ctx := seed(t)
	repo := NewScheduleRepo(db)

	require.NoError(t, repo.Create(ctx, schedules.Schedule{ID: "sch-1", PetID: "pet-1"}))
	require.NoError(t, repo.AddTime(ctx, schedules.Slot{ID: "t-1", ScheduleID: "sch-1", ActivityType: schedules.ActivityFeed, TimePeriod: schedules.PeriodMorning}))
	require.NoError(t, repo.AddTime(ctx, schedules.Slot{ID: "t-2", ScheduleID: "sch-1", ActivityType: schedules.ActivityWalk, TimePeriod: schedules.PeriodEvening}))
	require.NoError(t, repo.DeleteTime(ctx, "sch-1", schedules.ActivityFeed, schedules.PeriodMorning))

	s, err := repo.GetStanding(ctx, "pet-1")
	require.NoError(t, err)
	require.Len(t, s.Times, 1)
	assert.True(t, s.Has(schedules.ActivityWalk, schedules.PeriodEvening))
}

func TestWaitlistRepo_DuplicateEmail(t *testing.T) {
	repo := NewWaitlistRepo(NewDB())
	ctx := context.Background()

	require.NoError(t, repo.Add(ctx, waitlist.Entry{ID: "w-1", Name: "Ana", Email: "ana@example.com"}))
	assert.ErrorIs(t, repo.Add(ctx, waitlist.Entry{ID: "w-2", Name: "Ana", Email: "ana@example.com"}), waitlist.ErrAlreadyJoined)
}
