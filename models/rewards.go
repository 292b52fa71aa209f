package models

import "time"

// Point categories for the rewards ledger
const (
	CategoryReporter = "reporter"
	CategoryCleanup  = "cleanup"
	CategoryGeneral  = "general"
)

// Badge is an unlockable achievement definition
type Badge struct {
	BadgeID        string `bson:"badge_id" json:"badge_id"`
	Name           string `bson:"name" json:"name"`
	Description    string `bson:"description" json:"description"`
	Icon           string `bson:"icon" json:"icon"`
	PointsRequired int    `bson:"points_required" json:"points_required"`
	Category       string `bson:"category" json:"category"`
	Rarity         string `bson:"rarity" json:"rarity"`
}

// NewBadge creates a badge with its rarity derived from the point threshold
func NewBadge(id, name, description, icon string, pointsRequired int, category string) Badge {
	return Badge{
		BadgeID:        id,
		Name:           name,
		Description:    description,
		Icon:           icon,
		PointsRequired: pointsRequired,
		Category:       category,
		Rarity:         badgeRarity(pointsRequired),
	}
}

func badgeRarity(points int) string {
	switch {
	case points <= 50:
		return "common"
	case points <= 150:
		return "uncommon"
	case points <= 300:
		return "rare"
	case points <= 500:
		return "epic"
	default:
		return "legendary"
	}
}

// Achievement is one entry in a user's achievement history log
type Achievement struct {
	Type   string    `bson:"type" json:"type"`
	Badges []string  `bson:"badges,omitempty" json:"badges,omitempty"`
	Date   time.Time `bson:"date" json:"date"`
}

// UserRewards is the per-user points/level/badge aggregate,
// created lazily on first award and mutated only by the award operation.
type UserRewards struct {
	Email          string        `bson:"email" json:"email"`
	Badges         []string      `bson:"badges" json:"badges"`
	TotalPoints    int           `bson:"total_points" json:"total_points"`
	ReporterPoints int           `bson:"reporter_points" json:"reporter_points"`
	CleanupPoints  int           `bson:"cleanup_points" json:"cleanup_points"`
	Level          int           `bson:"level" json:"level"`
	Title          string        `bson:"title" json:"title"`
	Achievements   []Achievement `bson:"achievements" json:"achievements"`
	CreatedAt      time.Time     `bson:"created_at" json:"created_at"`
	LastUpdated    time.Time     `bson:"last_updated" json:"last_updated"`
}

// NewUserRewards creates a fresh level 1 record for email
func NewUserRewards(email string) UserRewards {
	now := time.Now()
	return UserRewards{
		Email:        email,
		Badges:       []string{},
		Level:        1,
		Title:        TitleForLevel(1),
		Achievements: []Achievement{},
		CreatedAt:    now,
		LastUpdated:  now,
	}
}

// HasBadge reports whether the user already unlocked badgeID
func (u *UserRewards) HasBadge(badgeID string) bool {
	for _, b := range u.Badges {
		if b == badgeID {
			return true
		}
	}
	return false
}

// LevelForPoints derives a user level from total points
func LevelForPoints(totalPoints int) int {
	return totalPoints/100 + 1
}

var levelTitles = map[int]string{
	1:  "Beach Guardian",
	2:  "Coastal Protector",
	3:  "Ocean Defender",
	4:  "Marine Conservationist",
	5:  "Environmental Champion",
	6:  "Eco Warrior",
	7:  "Nature Guardian",
	8:  "Planet Protector",
	9:  "Earth Defender",
	10: "Legendary Guardian",
}

// TitleForLevel returns the display title for a level, capped at the
// legendary tier beyond level 10
func TitleForLevel(level int) string {
	if title, ok := levelTitles[level]; ok {
		return title
	}
	return "Legendary Guardian"
}

// DefaultBadges is the badge catalog seeded when the store has none
func DefaultBadges() []Badge {
	return []Badge{
		NewBadge("first_report", "First Report", "Submitted your first pollution report", "📝", 10, CategoryReporter),
		NewBadge("reporter_10", "Dedicated Reporter", "Submitted 10 pollution reports", "📊", 50, CategoryReporter),
		NewBadge("reporter_50", "Expert Reporter", "Submitted 50 pollution reports", "🏆", 150, CategoryReporter),
		NewBadge("first_cleanup", "First Cleanup", "Completed your first cleanup task", "🧹", 25, CategoryCleanup),
		NewBadge("cleanup_10", "Cleanup Veteran", "Completed 10 cleanup tasks", "🌟", 100, CategoryCleanup),
		NewBadge("cleanup_50", "Cleanup Master", "Completed 50 cleanup tasks", "👑", 300, CategoryCleanup),
		NewBadge("high_severity", "Crisis Responder", "Reported high-severity pollution", "🚨", 75, CategoryReporter),
		NewBadge("team_leader", "Team Leader", "Led a cleanup team", "👥", 50, CategoryCleanup),
		NewBadge("verification", "Verification Expert", "Verified 5 cleanup tasks", "✅", 100, CategoryCleanup),
		NewBadge("environmentalist", "Environmentalist", "Earned 500 total points", "🌍", 500, CategoryGeneral),
	}
}
