package models

import (
	"fmt"
	"math/rand"
	"time"
)

// TaskStatus enum
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCleaned    TaskStatus = "cleaned"
	StatusVerified   TaskStatus = "verified"
)

// allowedTransitions is the closed transition table for cleanup tasks.
// in_progress -> in_progress covers verification re-queues, and
// cleaned -> verified is the final confirmation step.
var allowedTransitions = map[TaskStatus][]TaskStatus{
	StatusPending:    {StatusInProgress},
	StatusInProgress: {StatusInProgress, StatusCleaned},
	StatusCleaned:    {StatusVerified},
	StatusVerified:   {},
}

// ValidStatus reports whether s is a known task status
func ValidStatus(s TaskStatus) bool {
	_, ok := allowedTransitions[s]
	return ok
}

// CanTransition reports whether the status change from -> to is allowed
func CanTransition(from, to TaskStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CleanupTask is the mutable work item derived 1:1 from a pollution report.
// Tasks are never deleted; notes are an append-only log.
type CleanupTask struct {
	TaskID             string          `bson:"task_id" json:"task_id"`
	Report             PollutionReport `bson:"pollution_report" json:"pollution_report"`
	Status             TaskStatus      `bson:"status" json:"status"`
	AssignedTeam       *string         `bson:"assigned_team" json:"assigned_team"`
	AssignedDate       *time.Time      `bson:"assigned_date" json:"assigned_date"`
	StartDate          *time.Time      `bson:"start_date" json:"start_date"`
	CompletionDate     *time.Time      `bson:"completion_date" json:"completion_date"`
	CleanupNotes       string          `bson:"cleanup_notes" json:"cleanup_notes"`
	VerificationPhotos []string        `bson:"verification_photos" json:"verification_photos"`
	CleanupScore       *float64        `bson:"cleanup_score" json:"cleanup_score"`
	CleanupPoints      int             `bson:"cleanup_points" json:"cleanup_points"`
	CreatedAt          time.Time       `bson:"created_at" json:"created_at"`
	UpdatedAt          time.Time       `bson:"updated_at" json:"updated_at"`
}

// NewCleanupTask creates a pending task embedding the report snapshot
func NewCleanupTask(report PollutionReport) CleanupTask {
	now := time.Now()
	return CleanupTask{
		TaskID:             NewTaskID(now),
		Report:             report,
		Status:             StatusPending,
		VerificationPhotos: []string{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// AppendNote adds a line to the append-only notes log
func (t *CleanupTask) AppendNote(note string) {
	if note == "" {
		return
	}
	if t.CleanupNotes == "" {
		t.CleanupNotes = note
		return
	}
	t.CleanupNotes += "\n" + note
}

// CleanupTaskPoints is the severity-derived award for a completed cleanup:
// a 25 point base plus one point per 10 severity points of the original report.
func CleanupTaskPoints(reportScore int) int {
	return 25 + reportScore/10
}

// NewTaskID generates a task identifier unique under expected load.
// The timestamp plus random suffix is not collision-proof, just unlikely.
func NewTaskID(now time.Time) string {
	return fmt.Sprintf("cleanup_%s_%04d", now.Format("20060102_150405"), 1000+rand.Intn(9000))
}

// NewTeamID generates a team identifier in the same format
func NewTeamID(now time.Time) string {
	return fmt.Sprintf("team_%s_%04d", now.Format("20060102_150405"), 1000+rand.Intn(9000))
}
