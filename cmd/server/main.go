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

	"github.com/puckline/proclubs-stats/internal/api/handlers"
	"github.com/puckline/proclubs-stats/internal/config"
	"github.com/puckline/proclubs-stats/internal/league"
	"github.com/puckline/proclubs-stats/internal/providers/eaapi"
	"github.com/puckline/proclubs-stats/internal/services"
	"github.com/puckline/proclubs-stats/pkg/logger"
	"github.com/puckline/proclubs-stats/pkg/types"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	structuredLogger := logger.InitLogger("info", cfg.IsDevelopment())
	logger.WithService("proclubs-stats").WithFields(logrus.Fields{
		"environment": cfg.Env,
		"port":        cfg.Port,
		"season":      cfg.CurrentSeason,
	}).Info("Starting Pro Clubs stats service")

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	platform := types.Platform(cfg.EAPlatform)
	matchType := types.MatchType(cfg.EAMatchType)
	if !platform.Valid() {
		logger.WithService("proclubs-stats").Fatalf("Invalid EA_PLATFORM %q", cfg.EAPlatform)
	}
	if !matchType.Valid() {
		logger.WithService("proclubs-stats").Fatalf("Invalid EA_MATCH_TYPE %q", cfg.EAMatchType)
	}

	// Redis is optional; without it every fetch goes straight to the EA
	// API.
	var redisClient *redis.Client
	var cacheService *services.CacheService
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithService("proclubs-stats").Fatalf("Failed to parse Redis URL: %v", err)
		}
		redisClient = redis.NewClient(opt)
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.WithService("proclubs-stats").Warnf("Redis unreachable, continuing without cache: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			cacheService = services.NewCacheService(redisClient)
		}
	}

	registry := league.NewRegistry()
	registerConfiguredClubs(registry, cfg, structuredLogger)

	eaClient := eaapi.NewClient(
		cfg.EAAPIBaseURL,
		cfg.ExternalAPITimeout,
		cfg.CircuitBreakerThreshold,
		structuredLogger,
	)
	tracker := services.NewStatsTracker(
		eaClient,
		cacheService,
		registry,
		platform,
		matchType,
		cfg.MatchCacheTTL,
		structuredLogger,
	)

	var scheduler *services.SyncScheduler
	if len(cfg.EAClubIDs) > 0 {
		scheduler = services.NewSyncScheduler(tracker, cfg.EAClubIDs, cfg.SyncSchedule, structuredLogger)
		if err := scheduler.Start(); err != nil {
			logger.WithService("proclubs-stats").Fatalf("Failed to start sync scheduler: %v", err)
		}
		defer scheduler.Stop()
	} else {
		logger.WithService("proclubs-stats").Warn("No EA_CLUB_IDS configured, periodic sync disabled")
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	leagueHandler := handlers.NewLeagueHandler(registry, structuredLogger)
	analyticsHandler := handlers.NewAnalyticsHandler(tracker, structuredLogger)
	syncHandler := handlers.NewSyncHandler(tracker, cfg.EAClubIDs, structuredLogger)
	healthHandler := handlers.NewHealthHandler(redisClient, scheduler)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/teams", leagueHandler.ListTeams)
		apiV1.GET("/teams/:id", leagueHandler.GetTeam)
		apiV1.GET("/teams/:id/roster", leagueHandler.GetTeamRoster)
		apiV1.GET("/players", leagueHandler.ListPlayers)
		apiV1.GET("/players/:id", leagueHandler.GetPlayer)

		apiV1.GET("/clubs/:clubId/matches", analyticsHandler.ListMatches)
		apiV1.GET("/clubs/:clubId/matches/:matchId/analytics", analyticsHandler.GetMatchAnalytics)
		apiV1.GET("/clubs/:clubId/matches/:matchId/summary", analyticsHandler.GetMatchSummary)

		apiV1.POST("/sync", syncHandler.SyncAll)
		apiV1.POST("/sync/:clubId", syncHandler.SyncClub)
	}

	router.GET("/health", healthHandler.GetHealth)
	router.HEAD("/health", healthHandler.GetHealth)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.WithService("proclubs-stats").WithField("port", cfg.Port).Info("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithService("proclubs-stats").Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.WithService("proclubs-stats").Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithService("proclubs-stats").Fatalf("Server forced to shutdown: %v", err)
	}

	logger.WithService("proclubs-stats").Info("Server exited")
}

// registerConfiguredClubs seeds the registry with one league team per
// configured EA club so syncs have somewhere to land.
func registerConfiguredClubs(registry *league.Registry, cfg *config.Config, log *logrus.Logger) {
	for _, clubID := range cfg.EAClubIDs {
		team, err := league.NewLeagueTeam(fmt.Sprintf("EA Club %s", clubID), types.LevelNHL, cfg.CurrentSeason)
		if err != nil {
			log.WithFields(logrus.Fields{
				"component": "startup",
				"club_id":   clubID,
				"error":     err.Error(),
			}).Fatal("Failed to create league team")
		}
		team.EAClubID = clubID
		if err := registry.RegisterTeam(team); err != nil {
			log.WithFields(logrus.Fields{
				"component": "startup",
				"club_id":   clubID,
				"error":     err.Error(),
			}).Fatal("Failed to register league team")
		}
	}
}
