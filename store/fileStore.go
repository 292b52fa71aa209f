package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"coastsync-be/models"
)

// FileStore keeps each collection in one JSON file under dataDir.
// An absent or corrupt file loads as an empty collection; saves replace
// the whole file. This mirrors the JSON-file persistence contract the
// Mongo backend supersedes and is also what the test suite runs against.
type FileStore struct {
	mu      sync.RWMutex
	dataDir string
}

// NewFileStore creates the data directory if needed and returns the store
func NewFileStore(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{dataDir: dataDir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dataDir, name)
}

// loadFile decodes a JSON array file; missing or corrupt files yield an
// empty slice rather than an error
func loadFile[T any](path string) []T {
	data, err := os.ReadFile(path)
	if err != nil {
		return []T{}
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return []T{}
	}
	return records
}

func saveFile[T any](path string, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *FileStore) InsertReport(_ context.Context, report models.PollutionReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	reports := loadFile[models.PollutionReport](s.path("reports.json"))
	reports = append(reports, report)
	return saveFile(s.path("reports.json"), reports)
}

func (s *FileStore) ReportsByReporter(_ context.Context, email string) ([]models.PollutionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []models.PollutionReport
	for _, r := range loadFile[models.PollutionReport](s.path("reports.json")) {
		if r.ReporterEmail == email {
			matched = append(matched, r)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	return matched, nil
}

func (s *FileStore) RecentReports(_ context.Context, limit int) ([]models.PollutionReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := loadFile[models.PollutionReport](s.path("reports.json"))
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Timestamp.After(reports[j].Timestamp)
	})
	if limit > 0 && len(reports) > limit {
		reports = reports[:limit]
	}
	return reports, nil
}

func (s *FileStore) GetTask(_ context.Context, taskID string) (*models.CleanupTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range loadFile[models.CleanupTask](s.path("cleanups.json")) {
		if t.TaskID == taskID {
			task := t
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) ListTasks(_ context.Context) ([]models.CleanupTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tasks := loadFile[models.CleanupTask](s.path("cleanups.json"))
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
	return tasks, nil
}

func (s *FileStore) InsertTask(_ context.Context, task models.CleanupTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := loadFile[models.CleanupTask](s.path("cleanups.json"))
	tasks = append(tasks, task)
	return saveFile(s.path("cleanups.json"), tasks)
}

func (s *FileStore) UpdateTask(_ context.Context, task models.CleanupTask) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tasks := loadFile[models.CleanupTask](s.path("cleanups.json"))
	for i := range tasks {
		if tasks[i].TaskID == task.TaskID {
			tasks[i] = task
			return saveFile(s.path("cleanups.json"), tasks)
		}
	}
	return ErrNotFound
}

func (s *FileStore) GetTeam(_ context.Context, teamID string) (*models.CleanupTeam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range loadFile[models.CleanupTeam](s.path("teams.json")) {
		if t.TeamID == teamID {
			team := t
			return &team, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) ListTeams(_ context.Context) ([]models.CleanupTeam, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	teams := loadFile[models.CleanupTeam](s.path("teams.json"))
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].CreatedAt.Before(teams[j].CreatedAt)
	})
	return teams, nil
}

func (s *FileStore) InsertTeam(_ context.Context, team models.CleanupTeam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	teams := loadFile[models.CleanupTeam](s.path("teams.json"))
	teams = append(teams, team)
	return saveFile(s.path("teams.json"), teams)
}

func (s *FileStore) UpdateTeam(_ context.Context, team models.CleanupTeam) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	teams := loadFile[models.CleanupTeam](s.path("teams.json"))
	for i := range teams {
		if teams[i].TeamID == team.TeamID {
			teams[i] = team
			return saveFile(s.path("teams.json"), teams)
		}
	}
	return ErrNotFound
}

func (s *FileStore) GetUserRewards(_ context.Context, email string) (*models.UserRewards, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range loadFile[models.UserRewards](s.path("rewards.json")) {
		if r.Email == email {
			rewards := r
			return &rewards, nil
		}
	}
	return nil, ErrNotFound
}

func (s *FileStore) UpsertUserRewards(_ context.Context, rewards models.UserRewards) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := loadFile[models.UserRewards](s.path("rewards.json"))
	for i := range records {
		if records[i].Email == rewards.Email {
			records[i] = rewards
			return saveFile(s.path("rewards.json"), records)
		}
	}
	records = append(records, rewards)
	return saveFile(s.path("rewards.json"), records)
}

func (s *FileStore) ListBadges(_ context.Context) ([]models.Badge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return loadFile[models.Badge](s.path("badges.json")), nil
}

func (s *FileStore) SaveBadges(_ context.Context, badges []models.Badge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return saveFile(s.path("badges.json"), badges)
}
