package controllers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"coastsync-be/models"
	"coastsync-be/services"

	"github.com/gin-gonic/gin"
)

// GetTasks returns all cleanup tasks, optionally filtered by status
func GetTasks(c *gin.Context) {
	status := models.TaskStatus(c.Query("status"))
	if status != "" && !models.ValidStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasks, err := engine.ListTasks(ctx, status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve cleanup tasks"})
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// GetTask returns one cleanup task by id
func GetTask(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	task, err := engine.GetTask(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, task)
}

// GetMemberTasks returns the tasks assigned to any team the given
// member belongs to
func GetMemberTasks(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tasks, err := engine.TasksForMember(ctx, c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve member tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email": c.Param("email"),
		"tasks": tasks,
	})
}

// UpdateTaskStatus applies a status transition with optional notes and
// photo references
func UpdateTaskStatus(c *gin.Context) {
	var input struct {
		Status string   `json:"status" binding:"required"`
		Notes  string   `json:"notes,omitempty"`
		Photos []string `json:"photos,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := engine.UpdateStatus(ctx, c.Param("id"), models.TaskStatus(input.Status), input.Notes, input.Photos)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

// AssignTeam manually assigns an available team to a pending task
func AssignTeam(c *gin.Context) {
	var input struct {
		TeamID string `json:"team_id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := engine.ManualAssign(ctx, c.Param("id"), input.TeamID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team assigned successfully"})
}

// VerifyCleanup scores the submitted "after" photos and lets the engine
// decide whether the task closes or stays in progress
func VerifyCleanup(c *gin.Context) {
	var input struct {
		Email  string `json:"email" binding:"required,email"`
		Notes  string `json:"notes,omitempty"`
		Photos []struct {
			Filename string `json:"filename" binding:"required"`
			Data     string `json:"data,omitempty"`
			MimeType string `json:"mimeType,omitempty"`
		} `json:"photos" binding:"required,min=1"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	taskID := c.Param("id")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Cheap precondition checks before paying for scoring
	task, err := engine.GetTask(ctx, taskID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if task.AssignedTeam == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrNoAssignedTeam.Error()})
		return
	}
	if task.Status != models.StatusInProgress {
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrInvalidTransition.Error()})
		return
	}
	team, err := engine.GetTeam(ctx, *task.AssignedTeam)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}
	if !team.HasMember(input.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": services.ErrNotTeamMember.Error()})
		return
	}

	// Score every photo outside the engine's mutation lock; the analyzer
	// falls back internally so scoring never fails the request
	scoringCtx, cancelScoring := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancelScoring()

	photoRefs := make([]string, 0, len(input.Photos))
	photoScores := make([]int, 0, len(input.Photos))
	analyses := make([]analysisResultView, 0, len(input.Photos))

	for i, photo := range input.Photos {
		var imageData []byte
		if photo.Data != "" {
			decoded, err := base64.StdEncoding.DecodeString(photo.Data)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Photo data must be base64 encoded"})
				return
			}
			imageData = decoded
		}

		result := analyzer.AnalyzeCleanupImage(scoringCtx, imageData, photo.MimeType)
		photoRefs = append(photoRefs, fmt.Sprintf("verification_%s_%s", taskID, photo.Filename))
		photoScores = append(photoScores, result.Score)
		analyses = append(analyses, analysisResultView{
			Photo:    input.Photos[i].Filename,
			Score:    result.Score,
			Analysis: result.Analysis,
			Quality:  result.CleanupQuality,
		})
	}

	result, err := engine.SubmitVerification(ctx, taskID, input.Email, input.Notes, photoRefs, photoScores)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":        result.Success,
		"message":        result.Message,
		"status":         result.Status,
		"score":          result.Score,
		"points_awarded": result.PointsAwarded,
		"analysis":       analyses,
	})
}

type analysisResultView struct {
	Photo    string `json:"photo"`
	Score    int    `json:"score"`
	Analysis string `json:"analysis"`
	Quality  string `json:"quality"`
}

// MarkCompleted forces a task into cleaned without verification scoring
func MarkCompleted(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	points, err := engine.MarkCompleted(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Cleanup marked as completed",
		"points_awarded": points,
	})
}

// GetCleanupStats returns the dashboard counters
func GetCleanupStats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := engine.Stats(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute cleanup stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}
