package models

import "time"

// TeamStatus enum
type TeamStatus string

const (
	TeamAvailable TeamStatus = "available"
	TeamBusy      TeamStatus = "busy"
	TeamInactive  TeamStatus = "inactive"
)

// CleanupTeam is a named group of members eligible for task assignment.
// CurrentTask is non-nil iff the team status is busy.
type CleanupTeam struct {
	TeamID        string     `bson:"team_id" json:"team_id"`
	Name          string     `bson:"name" json:"name"`
	LeaderEmail   string     `bson:"leader_email" json:"leader_email"`
	Members       []string   `bson:"members" json:"members"`
	Status        TeamStatus `bson:"status" json:"status"`
	CurrentTask   *string    `bson:"current_task" json:"current_task"`
	TotalCleanups int        `bson:"total_cleanups" json:"total_cleanups"`
	TotalPoints   int        `bson:"total_points" json:"total_points"`
	Rating        float64    `bson:"rating" json:"rating"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	LastActivity  time.Time  `bson:"last_activity" json:"last_activity"`
}

// NewCleanupTeam creates an available team with the default rating
func NewCleanupTeam(name, leaderEmail string, members []string) CleanupTeam {
	now := time.Now()
	return CleanupTeam{
		TeamID:       NewTeamID(now),
		Name:         name,
		LeaderEmail:  leaderEmail,
		Members:      members,
		Status:       TeamAvailable,
		Rating:       5.0,
		CreatedAt:    now,
		LastActivity: now,
	}
}

// HasMember reports whether email belongs to the team's member set
func (t *CleanupTeam) HasMember(email string) bool {
	for _, m := range t.Members {
		if m == email {
			return true
		}
	}
	return false
}
