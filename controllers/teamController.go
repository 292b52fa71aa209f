package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CreateTeam registers a new cleanup team. The leader is always included
// in the member set and a team needs at least two members.
func CreateTeam(c *gin.Context) {
	var input struct {
		Name        string   `json:"name" binding:"required,max=100"`
		LeaderEmail string   `json:"leader_email" binding:"required,email"`
		Members     []string `json:"members,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	team, err := engine.CreateTeam(ctx, input.Name, input.LeaderEmail, input.Members)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, team)
}

// GetTeams returns every registered team
func GetTeams(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	teams, err := engine.ListTeams(ctx, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetAvailableTeams returns only teams eligible for assignment
func GetAvailableTeams(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	teams, err := engine.ListTeams(ctx, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve teams"})
		return
	}

	c.JSON(http.StatusOK, teams)
}

// GetTeam returns a team together with its task history
func GetTeam(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	team, err := engine.GetTeam(ctx, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	tasks, err := engine.TasksForTeam(ctx, team.TeamID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve team tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"team":  team,
		"tasks": tasks,
	})
}
