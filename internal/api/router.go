package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/catdraft/internal/api/handlers"
	"github.com/stitts-dev/catdraft/internal/api/middleware"
	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/services"
	"github.com/stitts-dev/catdraft/internal/simulator"
	"github.com/stitts-dev/catdraft/internal/store"
	"github.com/stitts-dev/catdraft/pkg/config"
)

// Dependencies are the long-lived services the routes share. Cache may be nil.
type Dependencies struct {
	Engine    *draft.Engine
	Simulator *simulator.Simulator
	Store     store.DraftStateStore
	Cache     *services.BoardCache
	Hub       *services.WebSocketHub
	Logger    *logrus.Logger
}

// NewRouter builds the gin engine with middleware, health, the v1 API and /ws
func NewRouter(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	league, err := cfg.League()
	if err != nil {
		return nil, err
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORS(cfg.CorsOrigins))

	healthHandler := handlers.NewHealthHandler(deps.Cache != nil)
	router.GET("/health", healthHandler.GetHealth)

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	SetupRoutes(apiV1, cfg, deps, league)

	wsHandler := handlers.NewWebSocketHandler(deps.Hub, cfg.CorsOrigins)
	router.GET("/ws", wsHandler.HandleWebSocket)

	return router, nil
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, cfg *config.Config, deps Dependencies, league models.LeagueConfig) {
	draftHandler := handlers.NewDraftHandler(deps.Engine, deps.Cache, league)
	simulationHandler := handlers.NewSimulationHandler(deps.Simulator, league, cfg.MaxSimulations, cfg.SimulationWorkers)
	stateHandler := handlers.NewStateHandler(deps.Store, deps.Engine, deps.Hub, deps.Cache, league)

	d := group.Group("/draft")
	{
		d.POST("/evaluate", draftHandler.Evaluate)
		d.POST("/score", draftHandler.Score)
		d.POST("/optimize-roster", draftHandler.OptimizeRoster)
		d.POST("/project", draftHandler.Project)
		d.POST("/tiers", draftHandler.Tiers)
		d.POST("/simulate", simulationHandler.RunSimulation)

		d.GET("/state/:season", stateHandler.GetState)
		d.PUT("/state/:season", stateHandler.PutState)
		d.GET("/state/:season/board", stateHandler.GetBoard)
		d.POST("/state/:season/picks", stateHandler.RecordPick)
	}
}
