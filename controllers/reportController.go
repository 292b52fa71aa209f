package controllers

import (
	"context"
	"encoding/base64"
	"log"
	"net/http"
	"strconv"
	"time"

	"coastsync-be/models"
	"coastsync-be/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateReport handles a new pollution report: it scores the photo,
// resolves the location, persists the report, credits the reporter and
// spins up a cleanup task
func CreateReport(c *gin.Context) {
	var input struct {
		Name      string `json:"name" binding:"required,max=100"`
		Email     string `json:"email" binding:"required,email"`
		Latitude  string `json:"latitude" binding:"required"`
		Longitude string `json:"longitude" binding:"required"`
		Filename  string `json:"filename" binding:"required,max=255"`
		Image     string `json:"image,omitempty"`
		MimeType  string `json:"mimeType,omitempty"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if ok, msg := analysisUtils.ValidateCoordinates(input.Latitude, input.Longitude); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	var imageData []byte
	if input.Image != "" {
		decoded, err := base64.StdEncoding.DecodeString(input.Image)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be base64 encoded"})
			return
		}
		imageData = decoded
	}

	// Scoring happens before any engine work; the analyzer degrades to a
	// fallback result on its own, so this never fails the request
	scoringCtx, cancelScoring := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelScoring()
	analysis := analyzer.AnalyzeImage(scoringCtx, imageData, input.MimeType)

	locationName := analysisUtils.ReverseGeocode(input.Latitude, input.Longitude)
	points := analysisUtils.CalculatePoints(analysis.Score)

	report := models.PollutionReport{
		ID:            primitive.NewObjectID(),
		Filename:      input.Filename,
		Latitude:      input.Latitude,
		Longitude:     input.Longitude,
		LocationName:  locationName,
		Score:         analysis.Score,
		Analysis:      analysis.Analysis,
		ReporterName:  input.Name,
		ReporterEmail: input.Email,
		Points:        points,
		Timestamp:     time.Now(),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := dataStore.InsertReport(ctx, report); err != nil {
		log.Println("Error inserting report:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	user, err := rewards.AwardPoints(ctx, input.Email, points, models.CategoryReporter)
	if err != nil {
		log.Println("Error awarding reporter points:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to award points"})
		return
	}

	task, err := engine.CreateTask(ctx, report)
	if err != nil {
		log.Println("Error creating cleanup task:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create cleanup task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"report":         report,
		"severity_level": analysisUtils.SeverityLevel(analysis.Score),
		"ai_source":      analysis.Source,
		"confidence":     analysis.Confidence,
		"points":         points,
		"total_points":   user.TotalPoints,
		"cleanup_task":   task,
	})
}

// GetUserReports returns all reports submitted by one reporter
func GetUserReports(c *gin.Context) {
	email := c.Param("email")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reports, err := dataStore.ReportsByReporter(ctx, email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve reports"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"email":   email,
		"reports": reports,
	})
}

// defaultRecentLimit caps the map feed when no limit is requested
const defaultRecentLimit = 20

// RecentReports returns the latest reports with coordinates for the map
func RecentReports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultRecentLimit)))
	if err != nil || limit < 1 || limit > 100 {
		limit = defaultRecentLimit
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reports, err := dataStore.RecentReports(ctx, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recent reports"})
		return
	}

	c.JSON(http.StatusOK, reports)
}
