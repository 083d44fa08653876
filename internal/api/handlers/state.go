package handlers

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/internal/models"
	"github.com/stitts-dev/catdraft/internal/services"
	"github.com/stitts-dev/catdraft/internal/store"
	"github.com/stitts-dev/catdraft/pkg/logger"
	"github.com/stitts-dev/catdraft/pkg/utils"
)

// StateHandler serves the persisted live draft for a season
type StateHandler struct {
	store    store.DraftStateStore
	engine   *draft.Engine
	hub      *services.WebSocketHub
	cache    *services.BoardCache
	defaults models.LeagueConfig

	// serializes read-modify-write on picks
	mu sync.Mutex
}

func NewStateHandler(s store.DraftStateStore, engine *draft.Engine, hub *services.WebSocketHub, cache *services.BoardCache, defaults models.LeagueConfig) *StateHandler {
	return &StateHandler{
		store:    s,
		engine:   engine,
		hub:      hub,
		cache:    cache,
		defaults: defaults,
	}
}

type RecordPickRequest struct {
	PlayerID string `json:"player_id" binding:"required"`
}

// PickRecorded is the payload broadcast on the season topic
type PickRecorded struct {
	Season    int          `json:"season"`
	PlayerID  string       `json:"player_id"`
	TeamID    string       `json:"team_id"`
	PickIndex int          `json:"pick_index"`
	Board     *draft.Board `json:"board,omitempty"`
}

func (h *StateHandler) GetState(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}
	snap, err := h.store.Get(c.Request.Context(), season)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	utils.SendSuccess(c, snap)
}

// PutState replaces the season's snapshot after validating it
func (h *StateHandler) PutState(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}
	var snap draft.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		utils.SendValidationError(c, "Invalid draft snapshot", err.Error())
		return
	}
	applyLeagueDefaults(&snap, h.defaults)
	if err := snap.Validate(); err != nil {
		utils.SendInvalidSnapshot(c, err.Error())
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.store.Save(c.Request.Context(), season, &snap); err != nil {
		respondEngineError(c, err)
		return
	}
	h.invalidateBoard(c.Request.Context(), season)
	utils.SendSuccess(c, &snap)
}

// GetBoard evaluates the persisted snapshot. The board is cached until the
// next pick or state replacement for the season.
func (h *StateHandler) GetBoard(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()
	key := services.SeasonBoardKey(season)
	if cached, hit, err := h.cache.Get(ctx, key); err == nil && hit {
		utils.SendSuccessWithMeta(c, cached, &utils.Meta{Cached: true})
		return
	}

	snap, err := h.store.Get(ctx, season)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	board, err := h.engine.Evaluate(ctx, snap)
	if err != nil {
		respondEngineError(c, err)
		return
	}
	if err := h.cache.Set(ctx, key, board); err != nil {
		requestLogger(c).WithError(err).Warn("Failed to cache season board")
	}
	utils.SendSuccessWithMeta(c, board, &utils.Meta{Total: len(board.Scores), Skipped: board.Skipped})
}

// RecordPick moves a player onto the team on the clock, saves the draft and
// broadcasts the refreshed board to the season topic
func (h *StateHandler) RecordPick(c *gin.Context) {
	season, ok := seasonParam(c)
	if !ok {
		return
	}
	var req RecordPickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}
	ctx := c.Request.Context()

	h.mu.Lock()
	snap, err := h.store.Get(ctx, season)
	if err != nil {
		h.mu.Unlock()
		respondEngineError(c, err)
		return
	}
	teamID, err := snap.RecordPick(req.PlayerID)
	if err != nil {
		h.mu.Unlock()
		respondEngineError(c, fmt.Errorf("%w: %v", utils.ErrConflict, err))
		return
	}
	if err := h.store.Save(ctx, season, snap); err != nil {
		h.mu.Unlock()
		respondEngineError(c, err)
		return
	}
	h.invalidateBoard(ctx, season)
	h.mu.Unlock()

	log := logger.WithDraftContext(strconv.Itoa(season), snap.PickIndex-1).
		WithField("player_id", req.PlayerID).
		WithField("team_id", teamID)

	event := PickRecorded{
		Season:    season,
		PlayerID:  req.PlayerID,
		TeamID:    teamID,
		PickIndex: snap.PickIndex - 1,
	}
	if snap.PickIndex < snap.League.NumTeams*snap.League.Rounds {
		board, err := h.engine.Evaluate(ctx, snap)
		if err != nil {
			log.WithError(err).Warn("Failed to refresh board after pick")
		} else {
			event.Board = board
		}
	}

	if h.hub != nil {
		if err := h.hub.BroadcastToTopic(services.DraftTopic(season), services.MessagePickRecorded, event); err != nil {
			log.WithError(err).Warn("Failed to broadcast pick")
		}
	}
	log.Info("Pick recorded")

	utils.SendSuccess(c, event)
}

func seasonParam(c *gin.Context) (int, bool) {
	season, err := strconv.Atoi(c.Param("season"))
	if err != nil || season <= 0 {
		utils.SendValidationError(c, "Invalid season", c.Param("season"))
		return 0, false
	}
	return season, true
}

func (h *StateHandler) invalidateBoard(ctx context.Context, season int) {
	if err := h.cache.Invalidate(ctx, services.SeasonBoardKey(season)); err != nil {
		logger.WithDraftContext(strconv.Itoa(season), -1).WithError(err).Warn("Failed to drop cached season board")
	}
}
