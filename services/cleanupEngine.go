package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"coastsync-be/models"
	"coastsync-be/store"
)

var (
	ErrTaskNotFound      = errors.New("cleanup task not found")
	ErrTeamNotFound      = errors.New("cleanup team not found")
	ErrTeamUnavailable   = errors.New("selected team is not available")
	ErrNoAssignedTeam    = errors.New("no team assigned to this cleanup")
	ErrNotTeamMember     = errors.New("not a member of the assigned cleanup team")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrTeamTooSmall      = errors.New("team must have at least 2 members including the leader")
)

// CleanupEngine owns the cleanup task lifecycle: creation, team matching,
// status transitions, verification closure and the manual override paths.
//
// All task/team mutations run under one mutex so that the assignment and
// release of a team are atomic as a pair. Photo scoring is slow and must
// happen before any engine call; the engine only applies decisions.
type CleanupEngine struct {
	mu      sync.Mutex
	store   store.Store
	rewards *RewardsService
}

func NewCleanupEngine(st store.Store, rewards *RewardsService) *CleanupEngine {
	return &CleanupEngine{store: st, rewards: rewards}
}

// CreateTask derives a pending task from a pollution report and tries to
// auto-assign it. Finding no available team leaves the task pending,
// which is a valid outcome rather than an error.
func (e *CleanupEngine) CreateTask(ctx context.Context, report models.PollutionReport) (models.CleanupTask, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task := models.NewCleanupTask(report)
	if err := e.store.InsertTask(ctx, task); err != nil {
		return models.CleanupTask{}, err
	}

	if teamID, ok, err := e.autoAssignLocked(ctx, task.TaskID); err != nil {
		log.Printf("[CleanupEngine] Auto-assignment for %s failed: %v", task.TaskID, err)
	} else if ok {
		log.Printf("[CleanupEngine] Task %s auto-assigned to team %s", task.TaskID, teamID)
	} else {
		log.Printf("[CleanupEngine] No team available for task %s, left pending", task.TaskID)
	}

	refreshed, err := e.store.GetTask(ctx, task.TaskID)
	if err != nil {
		return models.CleanupTask{}, err
	}
	return *refreshed, nil
}

// AutoAssign matches a pending task against the available team pool.
// The returned bool reports whether a team was assigned.
func (e *CleanupEngine) AutoAssign(ctx context.Context, taskID string) (string, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.autoAssignLocked(ctx, taskID)
}

func (e *CleanupEngine) autoAssignLocked(ctx context.Context, taskID string) (string, bool, error) {
	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, ErrTaskNotFound
	}
	if err != nil {
		return "", false, err
	}
	if task.Status != models.StatusPending {
		return "", false, ErrInvalidTransition
	}

	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return "", false, err
	}

	best := pickBestTeam(teams)
	if best == nil {
		return "", false, nil
	}

	if err := e.assignLocked(ctx, task, best); err != nil {
		return "", false, err
	}
	return best.TeamID, true, nil
}

// pickBestTeam selects the available team that is lexicographically
// maximal by (rating, total cleanups). Ties keep the earliest team in the
// listing order, so selection is deterministic within a run.
func pickBestTeam(teams []models.CleanupTeam) *models.CleanupTeam {
	var best *models.CleanupTeam
	for i := range teams {
		team := &teams[i]
		if team.Status != models.TeamAvailable {
			continue
		}
		if best == nil ||
			team.Rating > best.Rating ||
			(team.Rating == best.Rating && team.TotalCleanups > best.TotalCleanups) {
			best = team
		}
	}
	return best
}

// assignLocked mutates the task/team pair into the assigned state and
// persists both records
func (e *CleanupEngine) assignLocked(ctx context.Context, task *models.CleanupTask, team *models.CleanupTeam) error {
	now := time.Now()

	team.Status = models.TeamBusy
	team.CurrentTask = &task.TaskID
	team.LastActivity = now

	task.Status = models.StatusInProgress
	task.AssignedTeam = &team.TeamID
	task.AssignedDate = &now
	if task.StartDate == nil {
		task.StartDate = &now
	}
	task.UpdatedAt = now

	if err := e.store.UpdateTask(ctx, *task); err != nil {
		return err
	}
	return e.store.UpdateTeam(ctx, *team)
}

// ManualAssign is the operator override: it requires the target team to be
// available and bypasses the rating-based selection
func (e *CleanupEngine) ManualAssign(ctx context.Context, taskID, teamID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return err
	}
	if task.Status != models.StatusPending {
		return ErrInvalidTransition
	}

	team, err := e.store.GetTeam(ctx, teamID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTeamNotFound
	}
	if err != nil {
		return err
	}
	if team.Status != models.TeamAvailable {
		return ErrTeamUnavailable
	}

	return e.assignLocked(ctx, task, team)
}

// UpdateStatus applies a transition from the closed table together with its
// entry actions. Unknown targets and unreachable transitions are rejected
// without side effects.
func (e *CleanupEngine) UpdateStatus(ctx context.Context, taskID string, status models.TaskStatus, notes string, photos []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		return err
	}

	if !models.ValidStatus(status) || !models.CanTransition(task.Status, status) {
		return ErrInvalidTransition
	}

	now := time.Now()
	task.AppendNote(notes)
	task.VerificationPhotos = append(task.VerificationPhotos, photos...)
	task.UpdatedAt = now

	switch status {
	case models.StatusInProgress:
		// reachable from pending only through assignment, so the team
		// back-reference must already exist
		if task.AssignedTeam == nil {
			return ErrNoAssignedTeam
		}
		task.Status = models.StatusInProgress
		if task.StartDate == nil {
			task.StartDate = &now
		}
		return e.store.UpdateTask(ctx, *task)

	case models.StatusCleaned:
		_, err := e.closeTaskLocked(ctx, task, now)
		return err

	case models.StatusVerified:
		task.Status = models.StatusVerified
		if err := e.store.UpdateTask(ctx, *task); err != nil {
			return err
		}
		if _, err := e.rewards.AwardPoints(ctx, task.Report.ReporterEmail, 10, models.CategoryReporter); err != nil {
			log.Printf("[CleanupEngine] Reporter bonus for %s failed: %v", task.Report.ReporterEmail, err)
		}
		return nil
	}

	return ErrInvalidTransition
}

// closeTaskLocked applies the cleaned entry actions: completion timestamp,
// severity-derived points, team release with counter updates, member ledger
// credits, and a reconciliation pass for pending tasks
func (e *CleanupEngine) closeTaskLocked(ctx context.Context, task *models.CleanupTask, now time.Time) (int, error) {
	task.Status = models.StatusCleaned
	if task.CompletionDate == nil {
		task.CompletionDate = &now
	}
	task.CleanupPoints = models.CleanupTaskPoints(task.Report.Score)
	task.UpdatedAt = now

	if err := e.store.UpdateTask(ctx, *task); err != nil {
		return 0, err
	}

	if task.AssignedTeam == nil {
		return task.CleanupPoints, nil
	}

	team, err := e.store.GetTeam(ctx, *task.AssignedTeam)
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("[CleanupEngine] Assigned team %s missing while closing %s", *task.AssignedTeam, task.TaskID)
		return task.CleanupPoints, nil
	}
	if err != nil {
		return 0, err
	}

	team.Status = models.TeamAvailable
	team.CurrentTask = nil
	team.TotalCleanups++
	team.TotalPoints += task.CleanupPoints
	team.LastActivity = now

	if err := e.store.UpdateTeam(ctx, *team); err != nil {
		return 0, err
	}

	for _, member := range team.Members {
		if _, err := e.rewards.AwardPoints(ctx, member, task.CleanupPoints, models.CategoryCleanup); err != nil {
			log.Printf("[CleanupEngine] Awarding %d points to %s failed: %v", task.CleanupPoints, member, err)
		}
	}

	e.reconcilePendingLocked(ctx, team)
	return task.CleanupPoints, nil
}

// reconcilePendingLocked offers a freshly released team the oldest pending
// task, so tasks created while every team was busy still get assigned
func (e *CleanupEngine) reconcilePendingLocked(ctx context.Context, team *models.CleanupTeam) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		log.Printf("[CleanupEngine] Reconciliation scan failed: %v", err)
		return
	}
	for i := range tasks {
		if tasks[i].Status != models.StatusPending {
			continue
		}
		if err := e.assignLocked(ctx, &tasks[i], team); err != nil {
			log.Printf("[CleanupEngine] Reconciliation assignment of %s failed: %v", tasks[i].TaskID, err)
			return
		}
		log.Printf("[CleanupEngine] Pending task %s assigned to released team %s", tasks[i].TaskID, team.TeamID)
		return
	}
}

// VerificationResult is the outcome of a verification submission
type VerificationResult struct {
	Success       bool              `json:"success"`
	Message       string            `json:"message"`
	Status        models.TaskStatus `json:"status"`
	Score         float64           `json:"score"`
	PointsAwarded int               `json:"points_awarded,omitempty"`
}

// SubmitVerification applies the closure policy to already-scored "after"
// photos. The caller scores each photo with the analysis collaborator
// first; this method re-validates everything against current stored state,
// so resubmissions are safe.
func (e *CleanupEngine) SubmitVerification(ctx context.Context, taskID, memberEmail, notes string, photos []string, photoScores []int) (VerificationResult, error) {
	if len(photoScores) == 0 {
		return VerificationResult{}, fmt.Errorf("at least one scored verification photo is required")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return VerificationResult{}, ErrTaskNotFound
	}
	if err != nil {
		return VerificationResult{}, err
	}

	if task.AssignedTeam == nil {
		return VerificationResult{}, ErrNoAssignedTeam
	}
	// Only an in_progress task can be verified; a closed task keeps its
	// assigned_team back-reference, so without this gate a resubmission
	// would re-run the closure actions and double-credit the team
	if task.Status != models.StatusInProgress {
		return VerificationResult{}, ErrInvalidTransition
	}

	team, err := e.store.GetTeam(ctx, *task.AssignedTeam)
	if errors.Is(err, store.ErrNotFound) {
		return VerificationResult{}, ErrTeamNotFound
	}
	if err != nil {
		return VerificationResult{}, err
	}
	if !team.HasMember(memberEmail) {
		return VerificationResult{}, ErrNotTeamMember
	}

	total := 0
	for _, s := range photoScores {
		total += s
	}
	mean := float64(total) / float64(len(photoScores))

	now := time.Now()
	task.VerificationPhotos = append(task.VerificationPhotos, photos...)
	task.CleanupScore = &mean
	task.AppendNote(notes)
	task.UpdatedAt = now

	if mean < 30 {
		points, err := e.closeTaskLocked(ctx, task, now)
		if err != nil {
			return VerificationResult{}, err
		}
		return VerificationResult{
			Success:       true,
			Message:       "Cleanup verified successfully! Task completed.",
			Status:        models.StatusCleaned,
			Score:         mean,
			PointsAwarded: points,
		}, nil
	}

	task.Status = models.StatusInProgress
	task.AppendNote(fmt.Sprintf("[VERIFICATION FAILED] Score: %.1f. Cleanup incomplete, task continues.", mean))
	if err := e.store.UpdateTask(ctx, *task); err != nil {
		return VerificationResult{}, err
	}
	return VerificationResult{
		Success: false,
		Message: "Cleanup verification failed. Task continues.",
		Status:  models.StatusInProgress,
		Score:   mean,
	}, nil
}

// MarkCompleted is the leader/operator escape hatch for when scoring is
// unavailable or disputed: it forces the cleaned entry actions without any
// verification photos, fully bypassing the quality gate
func (e *CleanupEngine) MarkCompleted(ctx context.Context, taskID string) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrTaskNotFound
	}
	if err != nil {
		return 0, err
	}
	if task.AssignedTeam == nil {
		return 0, ErrNoAssignedTeam
	}
	if !models.CanTransition(task.Status, models.StatusCleaned) {
		return 0, ErrInvalidTransition
	}

	return e.closeTaskLocked(ctx, task, time.Now())
}

// CreateTeam registers a new available team. The leader is always part of
// the member set and teams need at least two members.
func (e *CleanupEngine) CreateTeam(ctx context.Context, name, leaderEmail string, members []string) (models.CleanupTeam, error) {
	memberSet := make([]string, 0, len(members)+1)
	seen := map[string]bool{}
	for _, m := range append(members, leaderEmail) {
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		memberSet = append(memberSet, m)
	}
	if len(memberSet) < 2 {
		return models.CleanupTeam{}, ErrTeamTooSmall
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	team := models.NewCleanupTeam(name, leaderEmail, memberSet)
	if err := e.store.InsertTeam(ctx, team); err != nil {
		return models.CleanupTeam{}, err
	}
	return team, nil
}

// GetTask returns a task by id
func (e *CleanupEngine) GetTask(ctx context.Context, taskID string) (*models.CleanupTask, error) {
	task, err := e.store.GetTask(ctx, taskID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return task, err
}

// GetTeam returns a team by id
func (e *CleanupEngine) GetTeam(ctx context.Context, teamID string) (*models.CleanupTeam, error) {
	team, err := e.store.GetTeam(ctx, teamID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrTeamNotFound
	}
	return team, err
}

// ListTasks returns tasks, optionally filtered by status
func (e *CleanupEngine) ListTasks(ctx context.Context, status models.TaskStatus) ([]models.CleanupTask, error) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	if status == "" {
		return tasks, nil
	}
	filtered := make([]models.CleanupTask, 0, len(tasks))
	for _, t := range tasks {
		if t.Status == status {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// ListTeams returns every team, or only the available ones
func (e *CleanupEngine) ListTeams(ctx context.Context, availableOnly bool) ([]models.CleanupTeam, error) {
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}
	if !availableOnly {
		return teams, nil
	}
	available := make([]models.CleanupTeam, 0, len(teams))
	for _, t := range teams {
		if t.Status == models.TeamAvailable {
			available = append(available, t)
		}
	}
	return available, nil
}

// TasksForMember returns the tasks assigned to any team the member
// belongs to
func (e *CleanupEngine) TasksForMember(ctx context.Context, email string) ([]models.CleanupTask, error) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return nil, err
	}

	memberTeams := map[string]bool{}
	for _, t := range teams {
		if t.HasMember(email) {
			memberTeams[t.TeamID] = true
		}
	}

	var matched []models.CleanupTask
	for _, task := range tasks {
		if task.AssignedTeam != nil && memberTeams[*task.AssignedTeam] {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// TasksForTeam returns the task history of one team
func (e *CleanupEngine) TasksForTeam(ctx context.Context, teamID string) ([]models.CleanupTask, error) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	var matched []models.CleanupTask
	for _, task := range tasks {
		if task.AssignedTeam != nil && *task.AssignedTeam == teamID {
			matched = append(matched, task)
		}
	}
	return matched, nil
}

// CleanupStats are the dashboard counters
type CleanupStats struct {
	TotalReports   int `json:"total_reports"`
	Pending        int `json:"pending"`
	InProgress     int `json:"in_progress"`
	Cleaned        int `json:"cleaned"`
	Verified       int `json:"verified"`
	TotalTeams     int `json:"total_teams"`
	AvailableTeams int `json:"available_teams"`
	BusyTeams      int `json:"busy_teams"`
}

// Stats aggregates task and team counts by status
func (e *CleanupEngine) Stats(ctx context.Context) (CleanupStats, error) {
	tasks, err := e.store.ListTasks(ctx)
	if err != nil {
		return CleanupStats{}, err
	}
	teams, err := e.store.ListTeams(ctx)
	if err != nil {
		return CleanupStats{}, err
	}

	stats := CleanupStats{TotalReports: len(tasks), TotalTeams: len(teams)}
	for _, t := range tasks {
		switch t.Status {
		case models.StatusPending:
			stats.Pending++
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusCleaned:
			stats.Cleaned++
		case models.StatusVerified:
			stats.Verified++
		}
	}
	for _, t := range teams {
		switch t.Status {
		case models.TeamAvailable:
			stats.AvailableTeams++
		case models.TeamBusy:
			stats.BusyTeams++
		}
	}
	return stats, nil
}
