package services

import (
	"context"
	"testing"

	"coastsync-be/models"
	"coastsync-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRewards(t *testing.T) *RewardsService {
	t.Helper()
	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	rw := NewRewardsService(st)
	require.NoError(t, rw.EnsureDefaultBadges(context.Background()))
	return rw
}

func TestAwardPointsCreatesRecordLazily(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	user, err := rw.AwardPoints(ctx, "new@example.com", 20, models.CategoryReporter)
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, 20, user.TotalPoints)
	assert.Equal(t, 20, user.ReporterPoints)
	assert.Equal(t, 0, user.CleanupPoints)
	assert.Equal(t, 1, user.Level)
	assert.Equal(t, "Beach Guardian", user.Title)
}

func TestAwardPointsAccumulatesByCategory(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	_, err := rw.AwardPoints(ctx, "user@example.com", 20, models.CategoryReporter)
	require.NoError(t, err)
	_, err = rw.AwardPoints(ctx, "user@example.com", 33, models.CategoryCleanup)
	require.NoError(t, err)
	user, err := rw.AwardPoints(ctx, "user@example.com", 50, models.CategoryGeneral)
	require.NoError(t, err)

	assert.Equal(t, 103, user.TotalPoints)
	assert.Equal(t, 20, user.ReporterPoints)
	assert.Equal(t, 33, user.CleanupPoints)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, "Coastal Protector", user.Title)
}

func TestBadgeUnlocksAndAchievementLog(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	user, err := rw.AwardPoints(ctx, "cleaner@example.com", 33, models.CategoryCleanup)
	require.NoError(t, err)
	assert.Contains(t, user.Badges, "first_cleanup")
	require.Len(t, user.Achievements, 1)
	assert.Equal(t, "badge_earned", user.Achievements[0].Type)
	assert.Contains(t, user.Achievements[0].Badges, "first_cleanup")

	// the same badge is never granted twice
	user, err = rw.AwardPoints(ctx, "cleaner@example.com", 33, models.CategoryCleanup)
	require.NoError(t, err)
	count := 0
	for _, b := range user.Badges {
		if b == "first_cleanup" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestEnvironmentalistBadgeAtFiveHundred(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	user, err := rw.AwardPoints(ctx, "hero@example.com", 499, models.CategoryGeneral)
	require.NoError(t, err)
	assert.NotContains(t, user.Badges, "environmentalist")

	user, err = rw.AwardPoints(ctx, "hero@example.com", 1, models.CategoryGeneral)
	require.NoError(t, err)
	assert.Contains(t, user.Badges, "environmentalist")
	assert.Equal(t, 6, user.Level)
	assert.Equal(t, "Eco Warrior", user.Title)
}

func TestUserStatsForUnknownUser(t *testing.T) {
	rw := newTestRewards(t)

	stats, err := rw.UserStats(context.Background(), "ghost@example.com")
	require.NoError(t, err)

	assert.Equal(t, "ghost@example.com", stats.Email)
	assert.Equal(t, 0, stats.TotalPoints)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, "Beach Guardian", stats.Title)
	assert.Empty(t, stats.Badges)
	assert.Equal(t, 100, stats.NextLevelPoints)
	assert.Equal(t, 0.0, stats.ProgressToNext)
}

func TestUserStatsProgress(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	_, err := rw.AwardPoints(ctx, "busy@example.com", 130, models.CategoryCleanup)
	require.NoError(t, err)

	stats, err := rw.UserStats(ctx, "busy@example.com")
	require.NoError(t, err)

	assert.Equal(t, 130, stats.TotalPoints)
	assert.Equal(t, 2, stats.Level)
	assert.Equal(t, 70, stats.NextLevelPoints)
	assert.InDelta(t, 0.3, stats.ProgressToNext, 0.001)

	// earned badges come back resolved to full definitions
	require.NotEmpty(t, stats.Badges)
	ids := make([]string, 0, len(stats.Badges))
	for _, b := range stats.Badges {
		ids = append(ids, b.BadgeID)
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Rarity)
	}
	assert.Contains(t, ids, "first_cleanup")
	assert.Contains(t, ids, "cleanup_10")
}

func TestBadgeCatalogSeededOnce(t *testing.T) {
	rw := newTestRewards(t)
	ctx := context.Background()

	// a second seeding pass must not duplicate the catalog
	require.NoError(t, rw.EnsureDefaultBadges(ctx))

	catalog, err := rw.BadgeCatalog(ctx)
	require.NoError(t, err)
	assert.Len(t, catalog, len(models.DefaultBadges()))
}
