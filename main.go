package main

import (
	"log"
	"net/http"
	"os"

	"github.com/YashChoudhary13/The-MEX/config"
	"github.com/YashChoudhary13/The-MEX/notification"
	"github.com/YashChoudhary13/The-MEX/orders"
	"github.com/YashChoudhary13/The-MEX/realtime"
	"github.com/YashChoudhary13/The-MEX/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env if present; real env vars still win
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	// Initialize database
	config.InitDB()

	// Wire up the realtime order tracking pipeline
	store := orders.NewGormStore(config.DB)
	registry := realtime.NewRegistry(logger)
	notifier := notification.NewFromEnv(logger)
	mailer := notification.NewMailerFromEnv(logger)
	coordinator := orders.NewCoordinator(store, registry, notifier, logger)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for frontend integration
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "The Mex Restaurant API",
			"version": "1.0.0",
		})
	})

	// Register all routes
	routes.SetupRoutes(r, coordinator, registry, store, mailer, logger)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on http://localhost:%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
