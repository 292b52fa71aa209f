package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForPoints(t *testing.T) {
	assert.Equal(t, 1, LevelForPoints(0))
	assert.Equal(t, 1, LevelForPoints(99))
	assert.Equal(t, 2, LevelForPoints(100))
	assert.Equal(t, 6, LevelForPoints(500))
	assert.Equal(t, 13, LevelForPoints(1250))
}

func TestTitleForLevel(t *testing.T) {
	assert.Equal(t, "Beach Guardian", TitleForLevel(1))
	assert.Equal(t, "Eco Warrior", TitleForLevel(6))
	assert.Equal(t, "Legendary Guardian", TitleForLevel(10))
	// levels past the table keep the legendary title
	assert.Equal(t, "Legendary Guardian", TitleForLevel(25))
}

func TestBadgeRarityFromThreshold(t *testing.T) {
	assert.Equal(t, "common", NewBadge("a", "A", "", "", 10, CategoryReporter).Rarity)
	assert.Equal(t, "uncommon", NewBadge("b", "B", "", "", 100, CategoryReporter).Rarity)
	assert.Equal(t, "rare", NewBadge("c", "C", "", "", 300, CategoryCleanup).Rarity)
	assert.Equal(t, "epic", NewBadge("d", "D", "", "", 500, CategoryGeneral).Rarity)
	assert.Equal(t, "legendary", NewBadge("e", "E", "", "", 501, CategoryGeneral).Rarity)
}

func TestDefaultBadgesCatalog(t *testing.T) {
	badges := DefaultBadges()
	assert.Len(t, badges, 10)

	seen := map[string]bool{}
	for _, b := range badges {
		assert.False(t, seen[b.BadgeID], "duplicate badge id %s", b.BadgeID)
		seen[b.BadgeID] = true
		assert.NotEmpty(t, b.Name)
		assert.NotEmpty(t, b.Rarity)
	}
	assert.True(t, seen["first_report"])
	assert.True(t, seen["environmentalist"])
}

func TestHasBadge(t *testing.T) {
	user := NewUserRewards("u@example.com")
	assert.False(t, user.HasBadge("first_report"))
	user.Badges = append(user.Badges, "first_report")
	assert.True(t, user.HasBadge("first_report"))
}
