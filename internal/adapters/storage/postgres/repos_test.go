package postgres

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"pettabl/internal/domain/activities"
	"pettabl/internal/domain/pets"
	"pettabl/internal/domain/schedules"
	"pettabl/internal/domain/sessions"
	"pettabl/internal/domain/waitlist"

	"cloud.google.com/go/civil"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

var sessionCols = []string{
	"id", "pet_id", "fur_boss_id",
	"start_date", "end_date", "status", "notes",
	"created_at", "updated_at", "agents",
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM pets WHERE id = $1`)).
		WithArgs("pet-x").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "pet-x")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByID_ScansNullableAge(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	cols := []string{
		"id", "fur_boss_id", "name", "pet_type", "breed", "age",
		"food_preferences", "medical_info", "vet_contact", "photo_url",
		"created_at", "updated_at",
	}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM pets WHERE id = $1`)).
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("pet-1", "boss-1", "Rex", "dog", "", nil, "kibble", "", "", "", now, now))

	p, err := repo.GetByID(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Equal(t, "boss-1", p.OwnerID)
	assert.Equal(t, pets.PetTypeDog, p.PetType)
	assert.Nil(t, p.Age)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsRepo_Create_InsertsAgentsInTx(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions`)).
		WithArgs("s-1", "pet-1", "boss-1", "2024-06-01", "2024-06-03", "active", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_agents`)).
		WithArgs("s-1", "agent-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_agents`)).
		WithArgs("s-1", "agent-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(context.Background(), sessions.Session{
		ID:        "s-1",
		PetID:     "pet-1",
		OwnerID:   "boss-1",
		StartDate: civil.Date{Year: 2024, Month: 6, Day: 1},
		EndDate:   civil.Date{Year: 2024, Month: 6, Day: 3},
		Status:    sessions.StatusActive,
		AgentIDs:  []string{"agent-1", "agent-2"},
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsRepo_GetByID_SplitsAgents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE s.id = $1`)).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows(sessionCols).AddRow(
			"s-1", "pet-1", "boss-1",
			time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC),
			"planned", "notes", now, now, "agent-1,agent-2",
		))

	s, err := repo.GetByID(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, civil.Date{Year: 2024, Month: 6, Day: 1}, s.StartDate)
	assert.Equal(t, civil.Date{Year: 2024, Month: 6, Day: 3}, s.EndDate)
	assert.Equal(t, []string{"agent-1", "agent-2"}, s.AgentIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsRepo_ListByAgent_NoAgents(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db)
	now := time.Now()
	day := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`x.fur_agent_id = $1`)).
		WithArgs("agent-9").
		WillReturnRows(sqlmock.NewRows(sessionCols).
			AddRow("s-1", "pet-1", "boss-1", day, day, "planned", "", now, now, ""))

	out, err := repo.ListByAgent(context.Background(), "agent-9")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].AgentIDs)
	assert.NotNil(t, out[0].AgentIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsRepo_UpdateWithAgents_MissingSession(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sessions`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.UpdateWithAgents(context.Background(), sessions.Session{ID: "nope", AgentIDs: []string{"agent-1"}})
	assert.ErrorIs(t, err, sessions.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionsRepo_UpdateWithAgents_RollsBackOnAgentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionsRepo(db)
	fkErr := &pgconn.PgError{Code: "23503"}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sessions`)).
		WithArgs("s-1", "2024-06-01", "2024-06-09", "active", "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM session_agents WHERE session_id = $1`)).
		WithArgs("s-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO session_agents`)).
		WithArgs("s-1", "agent-2").
		WillReturnError(fkErr)
	mock.ExpectRollback()

	err := repo.UpdateWithAgents(context.Background(), sessions.Session{
		ID:        "s-1",
		StartDate: civil.Date{Year: 2024, Month: 6, Day: 1},
		EndDate:   civil.Date{Year: 2024, Month: 6, Day: 9},
		Status:    sessions.StatusActive,
		AgentIDs:  []string{"agent-2"},
		UpdatedAt: time.Now(),
	})
	assert.ErrorIs(t, err, fkErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_Create_ForeignKeyViolationIsOwnerNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO pets`)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := repo.Create(context.Background(), pets.Pet{ID: "pet-1", OwnerID: "ghost", Name: "Luna"})
	assert.ErrorIs(t, err, pets.ErrOwnerNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulesRepo_GetStanding(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchedulesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE pet_id = $1 AND session_id IS NULL`)).
		WithArgs("pet-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "pet_id"}).AddRow("sch-1", "pet-1"))
	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedule_times`)).
		WithArgs("sch-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "schedule_id", "activity_type", "time_period"}).
			AddRow("t-1", "sch-1", "feed", "morning").
			AddRow("t-2", "sch-1", "walk", "evening"))

	s, err := repo.GetStanding(context.Background(), "pet-1")
	require.NoError(t, err)
	assert.Nil(t, s.SessionID)
	assert.True(t, s.Has(schedules.ActivityFeed, schedules.PeriodMorning))
	assert.True(t, s.Has(schedules.ActivityWalk, schedules.PeriodEvening))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchedulesRepo_GetStanding_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSchedulesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM schedules`)).
		WithArgs("pet-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetStanding(context.Background(), "pet-1")
	assert.ErrorIs(t, err, schedules.ErrNotFound)
}

func TestActivitiesRepo_Create_UniqueViolationIsConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivitiesRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO activities`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), activities.Activity{
		ID:           "a-1",
		SessionID:    "s-1",
		ActivityType: schedules.ActivityFeed,
		TimePeriod:   schedules.PeriodMorning,
		Date:         civil.Date{Year: 2024, Month: 6, Day: 2},
	})
	assert.ErrorIs(t, err, activities.ErrConflict)
}

func TestActivitiesRepo_CountByDay(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivitiesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`GROUP BY date`)).
		WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"date", "count"}).
			AddRow(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), 3).
			AddRow(time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), 1))

	counts, err := repo.CountByDay(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, map[civil.Date]int{
		{Year: 2024, Month: 6, Day: 1}: 3,
		{Year: 2024, Month: 6, Day: 2}: 1,
	}, counts)
}

func TestActivitiesRepo_ListBySession_WithDate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewActivitiesRepo(db)
	day := civil.Date{Year: 2024, Month: 6, Day: 2}

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE session_id = $1 AND date = $2`)).
		WithArgs("s-1", "2024-06-02").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "session_id", "pet_id", "caretaker_id",
			"activity_type", "time_period", "date", "photo_url", "created_at",
		}).AddRow("a-1", "s-1", "pet-1", "agent-1", "walk", "afternoon",
			time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), "", time.Now()))

	out, err := repo.ListBySession(context.Background(), "s-1", &day)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, day, out[0].Date)
	assert.Equal(t, schedules.PeriodAfternoon, out[0].TimePeriod)
}

func TestWaitlistRepo_Add_Duplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewWaitlistRepo(db)

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO waitlist`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Add(context.Background(), waitlist.Entry{ID: "w-1", Name: "Ana", Email: "ana@example.com"})
	assert.ErrorIs(t, err, waitlist.ErrAlreadyJoined)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@localhost:5432/pettabl", migrateURL("postgres://u:p@localhost:5432/pettabl"))
	assert.Equal(t, "pgx5://localhost/db?sslmode=disable", migrateURL("postgresql://localhost/db?sslmode=disable"))
	assert.Equal(t, "pgx5://already", migrateURL("pgx5://already"))
}

func TestLikeEscape(t *testing.T) {
	assert.Equal(t, `ana\_b`, likeEscape("ana_b"))
	assert.Equal(t, `100\%`, likeEscape("100%"))
	assert.Equal(t, `a\\b`, likeEscape(`a\b`))
	assert.Equal(t, "walker@example.com", likeEscape("walker@example.com"))
}

func TestProfilesRepo_SearchByRole_EscapesWildcards(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProfilesRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta(`LIKE '%' || lower($2) || '%' ESCAPE '\'`)).
		WithArgs("fur_agent", `j\_doe`, 20).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "role", "phone", "address", "bio",
			"photo_url", "paw_points", "created_at", "updated_at",
		}))

	out, err := repo.SearchByRole(context.Background(), "fur_agent", "j_doe", 0)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NoError(t, mock.ExpectationsWereMet())
}
