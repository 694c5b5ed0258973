package sync

import (
	"Perkdraft/models"
	redis_models "Perkdraft/models/redis"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	return db, mock
}

func completedSession() *redis_models.Session {
	bundle := models.BundleConfig{PackTypes: []models.PackGroup{{Count: 5}}}
	return &redis_models.Session{
		Code:         "ABCDE",
		HostPlayerID: "p1",
		Phase:        redis_models.PhaseComplete,
		Settings:     redis_models.SessionSettings{RewardsPerPlayer: 3},
		UpdatedAt:    time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Players: []redis_models.Player{
			{ID: "p1", Name: "Host", Number: 1, RetrievalCode: "AAAA1111", Bundle: &bundle,
				Luck: &redis_models.LuckSummary{Target: 5.2, TotalValue: 5.0}},
			{ID: "p2", Name: "Kicked", Number: 2, Removed: true},
			{ID: "p3", Name: "Guest", Number: 3, RetrievalCode: "BBBB2222", Bundle: &bundle},
		},
	}
}

func TestArchiveSession(t *testing.T) {
	db, mock := newMockDB(t)
	sm := NewSyncManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "session_results"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2))
	mock.ExpectCommit()

	require.NoError(t, sm.ArchiveSession(completedSession()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveSessionRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	sm := NewSyncManager(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "session_results"`).WillReturnError(errors.New("duplicate key"))
	mock.ExpectRollback()

	err := sm.ArchiveSession(completedSession())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArchiveSessionRejectsOpenSessions(t *testing.T) {
	db, _ := newMockDB(t)
	sm := NewSyncManager(db)

	s := completedSession()
	s.Phase = redis_models.PhaseSelecting
	assert.Error(t, sm.ArchiveSession(s))
}

func TestBuildResults(t *testing.T) {
	results, err := buildResults(completedSession())
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "p1", results[0].PlayerID)
	assert.True(t, results[0].IsHost)
	assert.Equal(t, 5.2, results[0].LuckTarget)
	assert.Equal(t, "BBBB2222", results[1].RetrievalCode)
	assert.False(t, results[1].IsHost)
	assert.JSONEq(t, `{"packTypes":[{"count":5,"slots":null}]}`, string(results[1].Bundle))
}

func TestResultsForSession(t *testing.T) {
	db, mock := newMockDB(t)
	sm := NewSyncManager(db)

	mock.ExpectQuery(`SELECT \* FROM "session_results" WHERE session_code = \$1 ORDER BY player_number`).
		WithArgs("ABCDE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "session_code", "player_id", "player_number"}).
			AddRow(1, "ABCDE", "p1", 1).
			AddRow(2, "ABCDE", "p3", 3))

	results, err := sm.ResultsForSession("ABCDE")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "p3", results[1].PlayerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
