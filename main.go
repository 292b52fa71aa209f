package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"coastsync-be/config"
	"coastsync-be/controllers"
	"coastsync-be/routes"
	"coastsync-be/services"
	"coastsync-be/store"
	"coastsync-be/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var st store.Store
	if os.Getenv("MONGODB_URI") != "" {
		db := config.ConnectDB()
		if db == nil {
			log.Fatal("Failed to connect to MongoDB")
		}
		st = store.NewMongoStore(db)
		log.Println("MongoDB storage backend ready")
	} else {
		dataDir := os.Getenv("DATA_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		fileStore, err := store.NewFileStore(dataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
		st = fileStore
		log.Printf("JSON file storage backend ready in %s", dataDir)
	}

	if os.Getenv("REDIS_ADDRESS") != "" {
		config.ConnectRedis()
	} else {
		log.Println("REDIS_ADDRESS not set, report rate limiting disabled")
	}

	rewardsService := services.NewRewardsService(st)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := rewardsService.EnsureDefaultBadges(ctx); err != nil {
		log.Printf("Failed to seed default badges: %v", err)
	}
	cancel()

	engine := services.NewCleanupEngine(st, rewardsService)
	analyzer := analysisUtils.NewAnalyzer()

	controllers.Init(st, engine, rewardsService, analyzer)

	r := gin.Default()
	r.Use(cors.Default())

	routes.ReportRoutes(r)
	routes.CleanupRoutes(r)
	routes.RewardsRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
