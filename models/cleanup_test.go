package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to TaskStatus }{
		{StatusPending, StatusInProgress},
		{StatusInProgress, StatusInProgress},
		{StatusInProgress, StatusCleaned},
		{StatusCleaned, StatusVerified},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransition(tc.from, tc.to), "%s -> %s must be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to TaskStatus }{
		{StatusPending, StatusCleaned},
		{StatusPending, StatusVerified},
		{StatusInProgress, StatusPending},
		{StatusInProgress, StatusVerified},
		{StatusCleaned, StatusCleaned},
		{StatusCleaned, StatusInProgress},
		{StatusVerified, StatusPending},
		{StatusVerified, StatusInProgress},
		{StatusVerified, StatusCleaned},
		{StatusVerified, StatusVerified},
	}
	for _, tc := range denied {
		assert.False(t, CanTransition(tc.from, tc.to), "%s -> %s must be denied", tc.from, tc.to)
	}
}

func TestValidStatus(t *testing.T) {
	for _, s := range []TaskStatus{StatusPending, StatusInProgress, StatusCleaned, StatusVerified} {
		assert.True(t, ValidStatus(s))
	}
	assert.False(t, ValidStatus("done"))
	assert.False(t, ValidStatus(""))
}

func TestCleanupTaskPoints(t *testing.T) {
	assert.Equal(t, 25, CleanupTaskPoints(0))
	assert.Equal(t, 25, CleanupTaskPoints(9))
	assert.Equal(t, 26, CleanupTaskPoints(10))
	assert.Equal(t, 33, CleanupTaskPoints(82))
	assert.Equal(t, 35, CleanupTaskPoints(100))
}

func TestNewCleanupTaskDefaults(t *testing.T) {
	report := PollutionReport{Score: 60, ReporterEmail: "r@example.com"}
	task := NewCleanupTask(report)

	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, report.ReporterEmail, task.Report.ReporterEmail)
	assert.Nil(t, task.AssignedTeam)
	assert.Nil(t, task.StartDate)
	assert.Nil(t, task.CompletionDate)
	assert.NotNil(t, task.VerificationPhotos)
	assert.Empty(t, task.VerificationPhotos)
}

func TestAppendNote(t *testing.T) {
	var task CleanupTask

	task.AppendNote("")
	assert.Equal(t, "", task.CleanupNotes)

	task.AppendNote("first")
	assert.Equal(t, "first", task.CleanupNotes)

	task.AppendNote("second")
	assert.Equal(t, "first\nsecond", task.CleanupNotes)
}

func TestIDFormats(t *testing.T) {
	now := time.Date(2026, 8, 31, 14, 5, 9, 0, time.UTC)

	taskPattern := regexp.MustCompile(`^cleanup_20260831_140509_\d{4}$`)
	assert.Regexp(t, taskPattern, NewTaskID(now))

	teamPattern := regexp.MustCompile(`^team_20260831_140509_\d{4}$`)
	assert.Regexp(t, teamPattern, NewTeamID(now))
}

func TestNewCleanupTeamDefaults(t *testing.T) {
	team := NewCleanupTeam("shore squad", "lead@example.com",
		[]string{"lead@example.com", "crew@example.com"})

	assert.Equal(t, TeamAvailable, team.Status)
	assert.Equal(t, 5.0, team.Rating)
	assert.Equal(t, 0, team.TotalCleanups)
	assert.Nil(t, team.CurrentTask)
	assert.True(t, team.HasMember("crew@example.com"))
	assert.False(t, team.HasMember("stranger@example.com"))
}
