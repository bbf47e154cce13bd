package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dreamsbydutch/gshl-lineups/internal/api"
	"github.com/dreamsbydutch/gshl-lineups/internal/api/handlers"
	"github.com/dreamsbydutch/gshl-lineups/internal/api/middleware"
	"github.com/dreamsbydutch/gshl-lineups/internal/services"
	"github.com/dreamsbydutch/gshl-lineups/pkg/config"
	"github.com/dreamsbydutch/gshl-lineups/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		logrus.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	rosterStore := services.NewRosterStore(db)

	var ratings services.RatingProvider
	if cfg.RankingEngineURL != "" {
		ratings = services.NewRankingEngineClient(
			cfg.RankingEngineURL,
			cfg.RankingTimeout,
			cfg.RankingRateLimit,
			cfg.CircuitBreakerThreshold,
			logrus.StandardLogger(),
		)
	} else {
		logrus.Warn("RANKING_ENGINE_URL not set, using stored ratings only")
	}

	lineupService := services.NewLineupService(
		rosterStore,
		cacheService,
		ratings,
		logrus.StandardLogger(),
		cfg.SearchNodeBudget,
		cfg.LineupCacheTTL,
		time.Duration(cfg.OptimizationTimeout)*time.Second,
	)

	scheduler := services.NewLineupScheduler(lineupService, logrus.StandardLogger(), cfg.LineupRecomputeCron, cfg.OptimizerWorkers)
	if err := scheduler.Start(); err != nil {
		logrus.Errorf("Failed to start lineup scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.GetHealth)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, lineupService, rosterStore, cfg)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
