package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/warehouse/config"
	"github.com/epeers/warehouse/docs"
	"github.com/epeers/warehouse/internal/cache"
	"github.com/epeers/warehouse/internal/database"
	"github.com/epeers/warehouse/internal/handlers"
	"github.com/epeers/warehouse/internal/middleware"
	"github.com/epeers/warehouse/internal/repository"
	"github.com/epeers/warehouse/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Warehouse Financial Model API
// @version 1.0
// @description Monthly economics, projections, breakeven solving and loan sizing for a storage and pawn warehouse.
// @BasePath /
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	// Create context for initialization
	ctx := context.Background()

	// Scenario storage: PostgreSQL when configured, otherwise a directory
	var store services.ScenarioStore
	if cfg.UsePostgres() {
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
		if err := db.Migrate(ctx); err != nil {
			log.Fatalf("Failed to migrate database: %v", err)
		}
		store = repository.NewScenarioRepository(db.Pool)
	} else {
		fileRepo, err := repository.NewScenarioFileRepository(cfg.ScenarioDir)
		if err != nil {
			log.Fatalf("Failed to open scenario directory: %v", err)
		}
		log.WithField("dir", cfg.ScenarioDir).Info("storing scenarios on disk")
		store = fileRepo
	}

	// Initialize caches
	memCache := cache.NewMemoryCache(cfg.CacheTTL, cfg.CacheMaxEntries)

	// Initialize services
	calcSvc := services.NewCalculatorService(memCache)
	scenarioSvc := services.NewScenarioService(store)

	// Initialize handlers
	calcHandler := handlers.NewCalculatorHandler(calcSvc)
	scenarioHandler := handlers.NewScenarioHandler(scenarioSvc)
	userHandler := handlers.NewUserHandler(scenarioSvc)
	adminHandler := handlers.NewAdminHandler(memCache)

	// Setup Gin router
	if cfg.LogLevel < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.ValidateUser())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router, calcHandler, scenarioHandler, userHandler, adminHandler)

	docs.SwaggerInfo.Host = ""
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown: ", err)
	}

	log.Info("Server exited")
}
