package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/simulator"
	"github.com/stitts-dev/catdraft/pkg/logger"
	"github.com/stitts-dev/catdraft/pkg/utils"
)

type SimulationHandler struct {
	sim            *simulator.Simulator
	defaults       models.LeagueConfig
	maxSimulations int
	workers        int
}

func NewSimulationHandler(sim *simulator.Simulator, defaults models.LeagueConfig, maxSimulations, workers int) *SimulationHandler {
	return &SimulationHandler{
		sim:            sim,
		defaults:       defaults,
		maxSimulations: maxSimulations,
		workers:        workers,
	}
}

type SimulateRequest struct {
	Players     []models.Player      `json:"players" binding:"required,min=1"`
	League      *models.LeagueConfig `json:"league"`
	Simulations int                  `json:"simulations" binding:"required,min=1"`
	Seed        int64                `json:"seed"`
	// MySlot is 0-based; omitted rotates through every slot
	MySlot *int `json:"my_slot"`
}

// RunSimulation benchmarks the engine over full simulated drafts
func (h *SimulationHandler) RunSimulation(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	if req.Simulations > h.maxSimulations {
		utils.SendValidationError(c, "Too many simulations", fmt.Sprintf("at most %d per request", h.maxSimulations))
		return
	}

	league := h.defaults
	if req.League != nil {
		league = *req.League
	}
	cfg := simulator.Config{
		Simulations: req.Simulations,
		Workers:     h.workers,
		Seed:        req.Seed,
		MySlot:      -1,
	}
	if req.MySlot != nil {
		cfg.MySlot = *req.MySlot
	}

	logger.WithSimulationContext(cfg.Simulations, cfg.Seed).
		WithField("request_id", c.GetString("request_id")).
		Info("Starting draft simulation")

	report, err := h.sim.Run(c.Request.Context(), req.Players, league, cfg)
	switch {
	case errors.Is(err, simulator.ErrInvalidConfig):
		utils.SendValidationError(c, "Invalid simulation config", err.Error())
		return
	case errors.Is(err, draft.ErrInvalidSnapshot):
		utils.SendInvalidSnapshot(c, err.Error())
		return
	case err != nil:
		requestLogger(c).WithError(err).Error("Simulation failed")
		utils.SendError(c, http.StatusInternalServerError, utils.NewAppError(utils.ErrCodeSimulation, utils.ErrSimulationFailed.Error()))
		return
	}

	utils.SendSuccess(c, report)
}
