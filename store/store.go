package store

import (
	"context"
	"errors"

	"coastsync-be/models"
)

// ErrNotFound is returned when a record id has no match in the store
var ErrNotFound = errors.New("record not found")

// Store is the persistence collaborator for all record collections.
// Implementations provide indexed lookup and targeted update; the engine
// layers its own serialization on top, so Store methods only need to be
// individually safe for concurrent use.
type Store interface {
	InsertReport(ctx context.Context, report models.PollutionReport) error
	ReportsByReporter(ctx context.Context, email string) ([]models.PollutionReport, error)
	RecentReports(ctx context.Context, limit int) ([]models.PollutionReport, error)

	GetTask(ctx context.Context, taskID string) (*models.CleanupTask, error)
	ListTasks(ctx context.Context) ([]models.CleanupTask, error)
	InsertTask(ctx context.Context, task models.CleanupTask) error
	UpdateTask(ctx context.Context, task models.CleanupTask) error

	GetTeam(ctx context.Context, teamID string) (*models.CleanupTeam, error)
	ListTeams(ctx context.Context) ([]models.CleanupTeam, error)
	InsertTeam(ctx context.Context, team models.CleanupTeam) error
	UpdateTeam(ctx context.Context, team models.CleanupTeam) error

	GetUserRewards(ctx context.Context, email string) (*models.UserRewards, error)
	UpsertUserRewards(ctx context.Context, rewards models.UserRewards) error

	ListBadges(ctx context.Context) ([]models.Badge, error)
	SaveBadges(ctx context.Context, badges []models.Badge) error
}
