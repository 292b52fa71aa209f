package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetUserRewards returns a user's points, level, title, badges and
// achievement history
func GetUserRewards(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stats, err := rewards.UserStats(ctx, c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve rewards"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetBadges returns the full badge catalog
func GetBadges(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	badges, err := rewards.BadgeCatalog(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve badges"})
		return
	}

	c.JSON(http.StatusOK, badges)
}
