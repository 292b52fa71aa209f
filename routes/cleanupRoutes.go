package routes

import (
	"coastsync-be/controllers"

	"github.com/gin-gonic/gin"
)

// CleanupRoutes sets up the cleanup task and team routes
func CleanupRoutes(r *gin.Engine) {
	cleanup := r.Group("/api/cleanup")
	{
		cleanup.POST("/team/create", controllers.CreateTeam)
		cleanup.GET("/teams", controllers.GetTeams)
		cleanup.GET("/teams/available", controllers.GetAvailableTeams)
		cleanup.GET("/team/:id", controllers.GetTeam)

		cleanup.GET("/tasks", controllers.GetTasks)
		cleanup.GET("/tasks/member/:email", controllers.GetMemberTasks)
		cleanup.GET("/task/:id", controllers.GetTask)
		cleanup.POST("/task/:id/status", controllers.UpdateTaskStatus)
		cleanup.POST("/task/:id/assign", controllers.AssignTeam)
		cleanup.POST("/task/:id/verify", controllers.VerifyCleanup)
		cleanup.POST("/task/:id/complete", controllers.MarkCompleted)

		cleanup.GET("/stats", controllers.GetCleanupStats)
	}
}
