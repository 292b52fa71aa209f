package routes

import (
	"coastsync-be/controllers"

	"github.com/gin-gonic/gin"
)

// RewardsRoutes sets up the rewards and badge routes
func RewardsRoutes(r *gin.Engine) {
	rewards := r.Group("/api/rewards")
	{
		rewards.GET("/badges", controllers.GetBadges)
		rewards.GET("/:email", controllers.GetUserRewards)
	}
}
