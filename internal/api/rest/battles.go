package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/api/middleware"
	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/scripting"
	"github.com/cory-johannsen/pokesim/internal/simulator"
	"github.com/cory-johannsen/pokesim/internal/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// BattleHandler runs and serves battles.
type BattleHandler struct {
	runner Runner
	store  storage.Store
	logger *zap.Logger
}

// NewBattleHandler creates a BattleHandler.
func NewBattleHandler(runner Runner, store storage.Store, logger *zap.Logger) *BattleHandler {
	return &BattleHandler{runner: runner, store: store, logger: logger}
}

// CreateBattleRequest is the body of POST /api/battles.
type CreateBattleRequest struct {
	Pokemon1  battle.CombatantConfig `json:"pokemon1"`
	Pokemon2  battle.CombatantConfig `json:"pokemon2"`
	MaxTurns  int                    `json:"max_turns"`
	Seed      *uint64                `json:"seed"`
	Strategy1 string                 `json:"strategy1"`
	Strategy2 string                 `json:"strategy2"`
}

// Create simulates and stores a battle.
// POST /api/battles
func (h *BattleHandler) Create(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abort(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	cfg := battle.Config{Pokemon1: req.Pokemon1, Pokemon2: req.Pokemon2, MaxTurns: req.MaxTurns}

	out, err := h.runner.Run(c.Request.Context(), simulator.Request{
		Config:    cfg,
		Seed:      req.Seed,
		Strategy1: req.Strategy1,
		Strategy2: req.Strategy2,
	})
	switch {
	case err == nil:
	case errors.Is(err, battle.ErrInvalidConfig), errors.Is(err, scripting.ErrUnknownStrategy):
		abort(c, http.StatusBadRequest, err.Error())
		return
	case errors.Is(err, battle.ErrMissingData):
		abort(c, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		abort(c, http.StatusServiceUnavailable, "battle cancelled")
		return
	default:
		h.logger.Error("simulating battle", zap.Error(err), zap.String("trace_id", middleware.GetTraceID(c)))
		abort(c, http.StatusInternalServerError, "battle failed")
		return
	}

	rec, err := h.store.Save(c.Request.Context(), storage.BattleRecord{
		ID:     out.ID,
		Seed:   out.Seed,
		Config: cfg,
		Result: out.Result,
	})
	if err != nil {
		h.logger.Error("storing battle", zap.Error(err), zap.Stringer("battle_id", out.ID))
		abort(c, http.StatusInternalServerError, "failed to store battle")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":         rec.ID,
		"seed":       rec.Seed,
		"created_at": rec.CreatedAt,
		"result":     out.Result,
		"summary":    out.Summary,
	})
}

// Get returns one stored battle.
// GET /api/battles/:id
func (h *BattleHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abort(c, http.StatusBadRequest, "invalid battle id")
		return
	}
	rec, err := h.store.Get(c.Request.Context(), id)
	if errors.Is(err, storage.ErrBattleNotFound) {
		abort(c, http.StatusNotFound, "battle not found")
		return
	}
	if err != nil {
		h.logger.Error("loading battle", zap.Error(err), zap.Stringer("battle_id", id))
		abort(c, http.StatusInternalServerError, "failed to load battle")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"battle":  rec,
		"summary": battle.Summarize(rec.Result),
	})
}

// List returns stored battles newest first.
// GET /api/battles?limit=20&offset=0
func (h *BattleHandler) List(c *gin.Context) {
	limit := defaultListLimit
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 && l <= maxListLimit {
		limit = l
	}
	offset := 0
	if o, err := strconv.Atoi(c.Query("offset")); err == nil && o > 0 {
		offset = o
	}
	rows, err := h.store.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.logger.Error("listing battles", zap.Error(err))
		abort(c, http.StatusInternalServerError, "failed to list battles")
		return
	}
	c.JSON(http.StatusOK, gin.H{"battles": rows, "limit": limit, "offset": offset})
}
