package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/optimizer"
	"github.com/stitts-dev/catdraft/internal/services"
	"github.com/stitts-dev/catdraft/pkg/logger"
	"github.com/stitts-dev/catdraft/pkg/utils"
)

type DraftHandler struct {
	engine   *draft.Engine
	cache    *services.BoardCache
	defaults models.LeagueConfig
}

func NewDraftHandler(engine *draft.Engine, cache *services.BoardCache, defaults models.LeagueConfig) *DraftHandler {
	return &DraftHandler{
		engine:   engine,
		cache:    cache,
		defaults: defaults,
	}
}

type ScoreRequest struct {
	Snapshot draft.Snapshot `json:"snapshot"`
	PlayerID string         `json:"player_id" binding:"required"`
}

type OptimizeRosterRequest struct {
	Players     []models.Player         `json:"players"`
	RosterSlots []models.RosterSlotSpec `json:"roster_slots"`
}

// Evaluate scores every available player for the pick on the clock
func (h *DraftHandler) Evaluate(c *gin.Context) {
	snap, ok := h.bindSnapshot(c)
	if !ok {
		return
	}
	log := requestLogger(c)

	key, err := services.BoardKey("evaluate", snap, h.engine.Weights())
	if err == nil {
		if cached, hit, err := h.cache.Get(c.Request.Context(), key); err == nil && hit {
			utils.SendSuccessWithMeta(c, cached, &utils.Meta{Cached: true})
			return
		}
	}

	board, err := h.engine.Evaluate(c.Request.Context(), snap)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	if key != "" {
		if err := h.cache.Set(c.Request.Context(), key, board); err != nil {
			log.WithError(err).Warn("Failed to cache board")
		}
	}

	log.WithFields(logrus.Fields{
		"pick_index": board.PickIndex,
		"candidates": len(board.Scores),
	}).Debug("Board evaluated")

	utils.SendSuccessWithMeta(c, board, &utils.Meta{Total: len(board.Scores), Skipped: board.Skipped})
}

// Score returns the breakdown for one available player
func (h *DraftHandler) Score(c *gin.Context) {
	var req ScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	h.applyDefaults(&req.Snapshot)

	score, err := h.engine.ScorePlayer(c.Request.Context(), &req.Snapshot, req.PlayerID)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.SendSuccess(c, score)
}

// OptimizeRoster assigns a set of players to the roster layout
func (h *DraftHandler) OptimizeRoster(c *gin.Context) {
	var req OptimizeRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	specs := req.RosterSlots
	if len(specs) == 0 {
		specs = h.defaults.RosterSlots
	}
	slots, err := optimizer.FromSpecs(specs)
	if err != nil {
		utils.SendValidationError(c, "Invalid roster slots", err.Error())
		return
	}
	utils.SendSuccess(c, optimizer.Optimize(req.Players, slots))
}

// Project returns end-of-draft standings for every team
func (h *DraftHandler) Project(c *gin.Context) {
	snap, ok := h.bindSnapshot(c)
	if !ok {
		return
	}
	projection, err := h.engine.Project(snap)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.SendSuccess(c, projection)
}

// Tiers groups the pool into value tiers, optionally for one position
func (h *DraftHandler) Tiers(c *gin.Context) {
	snap, ok := h.bindSnapshot(c)
	if !ok {
		return
	}
	tiers, err := h.engine.Tiers(snap, c.Query("position"))
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.SendSuccessWithMeta(c, tiers, &utils.Meta{Total: len(tiers)})
}

func (h *DraftHandler) bindSnapshot(c *gin.Context) (*draft.Snapshot, bool) {
	var snap draft.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.SendValidationError(c, "Invalid draft snapshot", err.Error())
		return nil, false
	}
	h.applyDefaults(&snap)
	return &snap, true
}

// applyDefaults fills in the server's league when the request carries none
func (h *DraftHandler) applyDefaults(snap *draft.Snapshot) {
	applyLeagueDefaults(snap, h.defaults)
}

func applyLeagueDefaults(snap *draft.Snapshot, defaults models.LeagueConfig) {
	if snap.League.NumTeams != 0 {
		return
	}
	categories := snap.League.Categories
	snap.League = defaults
	if len(categories) > 0 {
		snap.League.Categories = categories
	}
}

func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, draft.ErrInvalidSnapshot):
		utils.SendInvalidSnapshot(c, err.Error())
	case errors.Is(err, utils.ErrNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, utils.ErrConflict):
		utils.SendConflict(c, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		requestLogger(c).WithError(err).Warn("Request cancelled")
		utils.SendInternalError(c, "Request cancelled")
	default:
		requestLogger(c).WithError(err).Error("Draft engine failed")
		utils.SendInternalError(c, utils.ErrEvaluationFailed.Error())
	}
}

func requestLogger(c *gin.Context) *logrus.Entry {
	return logger.WithRequestContext(c.GetString("request_id"), c.Param("season"))
}
