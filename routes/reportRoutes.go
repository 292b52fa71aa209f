package routes

import (
	"coastsync-be/controllers"
	"coastsync-be/middlewares"

	"github.com/gin-gonic/gin"
)

// ReportRoutes sets up the pollution report routes
func ReportRoutes(r *gin.Engine) {
	report := r.Group("/api/report")
	{
		report.POST("/create", middlewares.ReportRateLimiter(20), controllers.CreateReport)
		report.GET("/user/:email", controllers.GetUserReports)
		report.GET("/recent", controllers.RecentReports)
	}
}
