package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"coastsync-be/models"
	"coastsync-be/store"
)

// RewardsService is the ledger for per-user points, levels, titles and
// badge unlocks. Records are created lazily on the first award.
type RewardsService struct {
	mu    sync.Mutex
	store store.Store
}

func NewRewardsService(st store.Store) *RewardsService {
	return &RewardsService{store: st}
}

// EnsureDefaultBadges seeds the badge catalog when the store has none
func (s *RewardsService) EnsureDefaultBadges(ctx context.Context) error {
	badges, err := s.store.ListBadges(ctx)
	if err != nil {
		return err
	}
	if len(badges) > 0 {
		return nil
	}
	return s.store.SaveBadges(ctx, models.DefaultBadges())
}

// AwardPoints credits points to a user in the given category, recomputes
// level and title, and unlocks any newly qualified badges
func (s *RewardsService) AwardPoints(ctx context.Context, email string, points int, category string) (*models.UserRewards, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.store.GetUserRewards(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		fresh := models.NewUserRewards(email)
		user = &fresh
	} else if err != nil {
		return nil, err
	}

	user.TotalPoints += points
	switch category {
	case models.CategoryReporter:
		user.ReporterPoints += points
	case models.CategoryCleanup:
		user.CleanupPoints += points
	}

	user.Level = models.LevelForPoints(user.TotalPoints)
	user.Title = models.TitleForLevel(user.Level)
	user.LastUpdated = time.Now()

	newBadges, err := s.newlyQualifiedBadges(ctx, user)
	if err != nil {
		return nil, err
	}
	if len(newBadges) > 0 {
		user.Badges = append(user.Badges, newBadges...)
		user.Achievements = append(user.Achievements, models.Achievement{
			Type:   "badge_earned",
			Badges: newBadges,
			Date:   time.Now(),
		})
	}

	if err := s.store.UpsertUserRewards(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *RewardsService) newlyQualifiedBadges(ctx context.Context, user *models.UserRewards) ([]string, error) {
	badges, err := s.store.ListBadges(ctx)
	if err != nil {
		return nil, err
	}

	var unlocked []string
	for _, badge := range badges {
		if !user.HasBadge(badge.BadgeID) && qualifiesForBadge(user, badge.BadgeID) {
			unlocked = append(unlocked, badge.BadgeID)
		}
	}
	return unlocked, nil
}

// qualifiesForBadge checks the point thresholds of the automatic badges.
// Badges without an automatic rule here stay locked until awarded manually.
func qualifiesForBadge(user *models.UserRewards, badgeID string) bool {
	switch badgeID {
	case "first_report":
		return user.ReporterPoints >= 10
	case "reporter_10":
		return user.ReporterPoints >= 50
	case "reporter_50":
		return user.ReporterPoints >= 150
	case "first_cleanup":
		return user.CleanupPoints >= 25
	case "cleanup_10":
		return user.CleanupPoints >= 100
	case "cleanup_50":
		return user.CleanupPoints >= 300
	case "environmentalist":
		return user.TotalPoints >= 500
	}
	return false
}

// UserStats is the rewards aggregate with resolved badges and
// progress toward the next level
type UserStats struct {
	Email           string               `json:"email"`
	TotalPoints     int                  `json:"total_points"`
	ReporterPoints  int                  `json:"reporter_points"`
	CleanupPoints   int                  `json:"cleanup_points"`
	Level           int                  `json:"level"`
	Title           string               `json:"title"`
	Badges          []models.Badge       `json:"badges"`
	Achievements    []models.Achievement `json:"achievements"`
	NextLevelPoints int                  `json:"next_level_points"`
	ProgressToNext  float64              `json:"progress_to_next"`
}

// UserStats returns the rewards view for a user, creating an empty
// record view if they have never earned points
func (s *RewardsService) UserStats(ctx context.Context, email string) (UserStats, error) {
	user, err := s.store.GetUserRewards(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		fresh := models.NewUserRewards(email)
		user = &fresh
	} else if err != nil {
		return UserStats{}, err
	}

	catalog, err := s.store.ListBadges(ctx)
	if err != nil {
		return UserStats{}, err
	}

	earned := make([]models.Badge, 0, len(user.Badges))
	for _, badge := range catalog {
		if user.HasBadge(badge.BadgeID) {
			earned = append(earned, badge)
		}
	}

	return UserStats{
		Email:           user.Email,
		TotalPoints:     user.TotalPoints,
		ReporterPoints:  user.ReporterPoints,
		CleanupPoints:   user.CleanupPoints,
		Level:           user.Level,
		Title:           user.Title,
		Badges:          earned,
		Achievements:    user.Achievements,
		NextLevelPoints: user.Level*100 - user.TotalPoints,
		ProgressToNext:  float64(user.TotalPoints%100) / 100,
	}, nil
}

// BadgeCatalog returns every badge definition
func (s *RewardsService) BadgeCatalog(ctx context.Context) ([]models.Badge, error) {
	return s.store.ListBadges(ctx)
}
