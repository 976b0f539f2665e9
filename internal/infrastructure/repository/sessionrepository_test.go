package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"tempus/internal/domain/session"
	"tempus/internal/infrastructure/persistence/models"
	apperrors "tempus/internal/shared/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SessionModel{},
		&models.ExtensionRequestModel{},
		&models.WorkstationModel{},
		&models.UserModel{},
		&models.AuditLogModel{},
	)
	require.NoError(t, err)

	return db
}

func createTestSession(t *testing.T, repo *SessionRepository, code string) *session.Session {
	s, err := session.NewSession(1, 1, 3600, "operator", "")
	require.NoError(t, err)
	require.NoError(t, s.SetAccessCode(code))
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func TestSessionRepository_Save(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	t.Run("save new session successfully", func(t *testing.T) {
		s := createTestSession(t, repo, "ABC234")
		assert.NotZero(t, s.ID())

		found, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, "ABC234", found.AccessCode())
		assert.Equal(t, 3600, found.Remaining())
		assert.Equal(t, session.StatusPending, found.Status())
	})

	t.Run("duplicate access code should fail", func(t *testing.T) {
		createTestSession(t, repo, "DUP234")

		s2, err := session.NewSession(2, 2, 1800, "operator", "")
		require.NoError(t, err)
		require.NoError(t, s2.SetAccessCode("DUP234"))
		assert.Error(t, repo.Save(ctx, s2))
	})
}

func TestSessionRepository_FindByCode(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := createTestSession(t, repo, "FIND23")

	found, err := repo.FindByCode(ctx, "FIND23")
	require.NoError(t, err)
	assert.Equal(t, s.ID(), found.ID())

	_, err = repo.FindByCode(ctx, "NOPE23")
	assert.True(t, apperrors.IsNotFoundError(err))
}

func TestSessionRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	t.Run("persists transitions", func(t *testing.T) {
		s := createTestSession(t, repo, "UPD234")

		_, err := s.Start(time.Now())
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, s))

		found, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, session.StatusActive, found.Status())
		assert.NotNil(t, found.StartedAt())
		assert.Equal(t, s.Version(), found.Version())
	})

	t.Run("stale version returns busy", func(t *testing.T) {
		s := createTestSession(t, repo, "CAS234")

		first, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		second, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)

		_, err = first.AddTime(300, "operator")
		require.NoError(t, err)
		require.NoError(t, repo.Update(ctx, first))

		_, err = second.AddTime(600, "operator")
		require.NoError(t, err)
		err = repo.Update(ctx, second)
		assert.True(t, apperrors.IsBusyError(err))

		found, err := repo.FindByID(ctx, s.ID())
		require.NoError(t, err)
		assert.Equal(t, 3900, found.Remaining())
	})
}

func TestSessionRepository_CodeInUse(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	s := createTestSession(t, repo, "USE234")

	inUse, err := repo.CodeInUse(ctx, "USE234")
	require.NoError(t, err)
	assert.True(t, inUse)

	inUse, err = repo.CodeInUse(ctx, "FREE23")
	require.NoError(t, err)
	assert.False(t, inUse)

	// a terminated session releases its code
	_, err = s.Terminate("operator", session.ReasonForcedClose, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, s))

	inUse, err = repo.CodeInUse(ctx, "USE234")
	require.NoError(t, err)
	assert.False(t, inUse)
}

func TestSessionRepository_ListActive(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	pending := createTestSession(t, repo, "PEND23")
	active := createTestSession(t, repo, "ACTV23")
	_, err := active.Start(time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, active))

	list, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ID(), list[0].ID())
	assert.NotEqual(t, pending.ID(), list[0].ID())
}

func TestSessionRepository_List(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	codes := []string{"LST232", "LST233", "LST234"}
	for _, code := range codes {
		createTestSession(t, repo, code)
	}

	t.Run("filter by status", func(t *testing.T) {
		status := session.StatusPending
		list, total, err := repo.List(ctx, session.Filter{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		list, total, err := repo.List(ctx, session.Filter{Page: 2, PageSize: 2})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, list, 1)
	})

	t.Run("filter by user", func(t *testing.T) {
		userID := uint(999)
		list, total, err := repo.List(ctx, session.Filter{UserID: &userID})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, list)
	})
}

func TestSessionRepository_DeleteEndedBefore(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	old := createTestSession(t, repo, "OLD234")
	_, err := old.Terminate("operator", session.ReasonNormalClose, time.Now().Add(-100*24*time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, old))

	fresh := createTestSession(t, repo, "NEW234")
	_, err = fresh.Terminate("operator", session.ReasonNormalClose, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, fresh))

	live := createTestSession(t, repo, "LIV234")

	deleted, err := repo.DeleteEndedBefore(ctx, time.Now().Add(-90*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	_, err = repo.FindByID(ctx, old.ID())
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = repo.FindByID(ctx, fresh.ID())
	assert.NoError(t, err)
	_, err = repo.FindByID(ctx, live.ID())
	assert.NoError(t, err)
}

func TestSessionRepository_Stats(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	createTestSession(t, repo, "STA232")
	active := createTestSession(t, repo, "STA233")
	_, err := active.Start(time.Now())
	require.NoError(t, err)
	_, err = active.AddTime(600, "operator")
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, active))

	stats, err := repo.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Today)
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(1), stats.ByStatus["active"])
	assert.Equal(t, int64(600), stats.TotalAddedSecs)
	assert.Equal(t, 3900, stats.AvgDurationSecs)
}

func TestSessionRepository_FindLiveByWorkstation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSessionRepository(db)
	ctx := context.Background()

	_, err := repo.FindLiveByWorkstation(ctx, 1)
	assert.True(t, apperrors.IsNotFoundError(err))

	s := createTestSession(t, repo, "LIVE34")
	_, err = s.Start(time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, s))

	found, err := repo.FindLiveByWorkstation(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, s.ID(), found.ID())

	_, err = repo.FindLiveByWorkstation(ctx, 2)
	assert.True(t, apperrors.IsNotFoundError(err))

	_, err = s.Terminate("operator", session.ReasonNormalClose, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Update(ctx, s))

	_, err = repo.FindLiveByWorkstation(ctx, 1)
	assert.True(t, apperrors.IsNotFoundError(err))
}
