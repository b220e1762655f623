package quota

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	dbpkg "github.com/sharlabs/shar-backend/pkg/db"
	"github.com/sharlabs/shar-backend/pkg/db/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupQuotaTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:quota_test?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS profiles (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  has_survival_pack INTEGER NOT NULL DEFAULT 0,
  survival_pack_expiry DATETIME,
  daily_chat_count INTEGER NOT NULL DEFAULT 0,
  last_chat_reset TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	t.Cleanup(func() {
		_ = db.Exec("DELETE FROM profiles").Error
	})
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, count int, lastReset *string) uuid.UUID {
	t.Helper()
	id := uuid.New()
	profile := &models.Profile{
		ID:             id,
		Email:          id.String() + "@example.com",
		PasswordHash:   "hash",
		DailyChatCount: count,
		LastChatReset:  lastReset,
	}
	require.NoError(t, db.Create(profile).Error)
	return id
}

func TestAdmitSequenceStopsAtLimit(t *testing.T) {
	db := setupQuotaTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	today := DayKey(now)

	id := seedProfile(t, db, 0, nil)

	for i := 1; i <= 5; i++ {
		outcome, err := repo.Admit(ctx, id, today, 5, now)
		require.NoError(t, err)
		require.Equal(t, dbpkg.WriteApplied, outcome, "admission %d should succeed", i)
	}

	outcome, err := repo.Admit(ctx, id, today, 5, now)
	require.NoError(t, err)
	require.Equal(t, dbpkg.WriteDenied, outcome, "sixth admission must be refused")

	var profile models.Profile
	require.NoError(t, db.Where("id = ?", id).First(&profile).Error)
	require.Equal(t, 5, profile.DailyChatCount)
	require.NotNil(t, profile.LastChatReset)
	require.Equal(t, today, *profile.LastChatReset)
}

func TestAdmitStaleDayRestartsAtOne(t *testing.T) {
	db := setupQuotaTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	today := DayKey(now)
	yesterday := DayKey(now.Add(-24 * time.Hour))

	// Exhausted yesterday; today must restart at 1.
	id := seedProfile(t, db, 5, &yesterday)

	outcome, err := repo.Admit(ctx, id, today, 5, now)
	require.NoError(t, err)
	require.Equal(t, dbpkg.WriteApplied, outcome)

	var profile models.Profile
	require.NoError(t, db.Where("id = ?", id).First(&profile).Error)
	require.Equal(t, 1, profile.DailyChatCount)
	require.Equal(t, today, *profile.LastChatReset)
}

func TestAdmitEntitledBoundary(t *testing.T) {
	db := setupQuotaTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	today := DayKey(now)

	id := seedProfile(t, db, 19, &today)

	outcome, err := repo.Admit(ctx, id, today, 20, now)
	require.NoError(t, err)
	require.Equal(t, dbpkg.WriteApplied, outcome, "twentieth admission should succeed")

	outcome, err = repo.Admit(ctx, id, today, 20, now)
	require.NoError(t, err)
	require.Equal(t, dbpkg.WriteDenied, outcome, "twenty-first admission must be refused")
}

func TestAdmitOneSlotLeftAdmitsExactlyOnce(t *testing.T) {
	db := setupQuotaTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()
	today := DayKey(now)

	// Two back-to-back requests racing for the final slot: the conditional
	// UPDATE lets exactly one through.
	id := seedProfile(t, db, 4, &today)

	first, err := repo.Admit(ctx, id, today, 5, now)
	require.NoError(t, err)
	second, err := repo.Admit(ctx, id, today, 5, now)
	require.NoError(t, err)

	outcomes := []dbpkg.WriteOutcome{first, second}
	require.Contains(t, outcomes, dbpkg.WriteApplied)
	require.Contains(t, outcomes, dbpkg.WriteDenied)

	var profile models.Profile
	require.NoError(t, db.Where("id = ?", id).First(&profile).Error)
	require.Equal(t, 5, profile.DailyChatCount)
}

func TestAdmitUnknownUserIsDenied(t *testing.T) {
	db := setupQuotaTestDB(t)
	repo := NewRepository(db)
	now := time.Now().UTC()

	outcome, err := repo.Admit(context.Background(), uuid.New(), DayKey(now), 5, now)
	require.NoError(t, err)
	require.Equal(t, dbpkg.WriteDenied, outcome)
}
