package main

import (
	"fmt"
	"net/http"
	"os"

	"kakeibo/internal/config"
	"kakeibo/internal/database"
	"kakeibo/internal/handlers"
	"kakeibo/internal/logger"
	"kakeibo/internal/middleware"
	"kakeibo/internal/notifier"
	"kakeibo/internal/services"
	"kakeibo/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "kakeibo/internal/docs" // Import swagger docs
)

// @title           Kakeibo API
// @version         1.0
// @description     Kakeibo is a personal finance and habit tracking backend: a transaction ledger with bucket and monthly aggregation, an asset portfolio, and habit completion analytics.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	loc := appConfig.Location()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom binding validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	balanceService := services.NewBalanceService(db, loc)
	bucketService := services.NewBucketService(db)
	portfolioService := services.NewPortfolioService(db)
	heatmapService := services.NewHeatmapService(db, loc)
	habitService := services.NewHabitService(db)
	transactionService := services.NewTransactionService(db)
	categoryService := services.NewCategoryService(db)
	slackNotifier := notifier.NewSlackNotifier(appConfig.SlackWebhookURL)

	facade := services.NewFacade(
		balanceService, bucketService, portfolioService,
		heatmapService, habitService, transactionService, loc,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler()
	analyticsHandler := handlers.NewAnalyticsHandler(facade)
	bucketHandler := handlers.NewBucketHandler(bucketService, facade)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	assetHandler := handlers.NewAssetHandler(portfolioService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, slackNotifier)
	habitHandler := handlers.NewHabitHandler(habitService, facade, slackNotifier)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.GET("/balance", analyticsHandler.GetMonthlyBalance)
	analytics.GET("/heatmap", analyticsHandler.GetHeatmap)
	analytics.GET("/portfolio", analyticsHandler.GetPortfolio)

	// Transaction routes
	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.GetTransactions)
	transactions.GET("/virtual", analyticsHandler.GetVirtualTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	// Bucket routes
	buckets := protected.Group("/buckets")
	buckets.POST("", bucketHandler.CreateBucket)
	buckets.GET("", bucketHandler.GetBuckets)
	buckets.GET("/:id", bucketHandler.GetBucket)
	buckets.GET("/:id/summary", bucketHandler.GetBucketSummary)

	// Category routes
	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.PUT("/:id", categoryHandler.RenameCategory)

	// Asset routes
	assets := protected.Group("/assets")
	assets.POST("", assetHandler.CreateAsset)
	assets.GET("", assetHandler.GetAssets)
	assets.POST("/:id/holdings", assetHandler.RecordHolding)

	// Habit routes
	habits := protected.Group("/habits")
	habits.POST("", habitHandler.CreateHabit)
	habits.GET("", habitHandler.GetHabits)
	habits.PUT("/order", habitHandler.Reorder)
	habits.GET("/archived", habitHandler.GetArchivedHabits)
	habits.POST("/:id/logs", habitHandler.LogCompletion)
	habits.POST("/:id/archive", habitHandler.Archive)
	habits.GET("/:id/streak", habitHandler.GetStreak)

	log.Infof("Starting Kakeibo backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
