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

	"github.com/stitts-dev/catdraft/internal/api"
	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/services"
	"github.com/stitts-dev/catdraft/internal/simulator"
	"github.com/stitts-dev/catdraft/internal/store"
	"github.com/stitts-dev/catdraft/pkg/config"
	"github.com/stitts-dev/catdraft/pkg/database"
	"github.com/stitts-dev/catdraft/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.GetLogger().Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	serviceLog := logger.WithService("catdraft")

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		serviceLog.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Migrate(&store.DraftState{}); err != nil {
		serviceLog.Fatalf("Failed to migrate database: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// the cache is optional; boards are recomputed when redis is down
	var boardCache *services.BoardCache
	redisClient, err := services.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		serviceLog.WithError(err).Warn("Redis unavailable, board cache disabled")
	} else {
		defer redisClient.Close()
		boardCache = services.NewBoardCache(redisClient, cfg.CacheTTL)
	}

	engine := draft.NewEngine(
		draft.WithWeights(cfg.Weights()),
		draft.WithBenchWeights(cfg.BenchWeights()),
		draft.WithWorkers(cfg.ScoringWorkers),
		draft.WithLogger(logger.WithService("engine")),
	)
	sim := simulator.NewSimulator(
		simulator.WithWeights(cfg.Weights()),
		simulator.WithBenchWeights(cfg.BenchWeights()),
		simulator.WithLogger(logger.WithService("simulator")),
	)

	hub := services.NewWebSocketHub()
	go hub.Run(ctx)

	router, err := api.NewRouter(cfg, api.Dependencies{
		Engine:    engine,
		Simulator: sim,
		Store:     store.NewGormDraftStateStore(db.DB),
		Cache:     boardCache,
		Hub:       hub,
		Logger:    log,
	})
	if err != nil {
		serviceLog.Fatalf("Failed to build router: %v", err)
	}

	for _, route := range router.Routes() {
		serviceLog.Debugf("%s %s", route.Method, route.Path)
	}

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		// simulations can run long
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		serviceLog.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serviceLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	serviceLog.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		serviceLog.Errorf("Server forced to shutdown: %v", err)
	}
	cancel()

	serviceLog.Info("Server exited")
}
