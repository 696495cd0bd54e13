package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/game/pokedex"
	"github.com/cory-johannsen/pokesim/internal/game/stats"
)

// DexHandler serves reference data.
type DexHandler struct {
	dex battle.Dex
}

// NewDexHandler creates a DexHandler.
func NewDexHandler(dex battle.Dex) *DexHandler {
	return &DexHandler{dex: dex}
}

// Species returns a species and, with ?level=N, its stats at that level.
// GET /api/species/:name
func (h *DexHandler) Species(c *gin.Context) {
	sp, ok := h.dex.Species(pokedex.Normalize(c.Param("name")))
	if !ok {
		abort(c, http.StatusNotFound, "species not found")
		return
	}
	resp := gin.H{"species": sp}
	if q := c.Query("level"); q != "" {
		level, err := strconv.Atoi(q)
		if err != nil || level < 1 || level > 100 {
			abort(c, http.StatusBadRequest, "level must be an integer in [1, 100]")
			return
		}
		resp["level"] = level
		resp["stats"] = stats.Compute(sp.Base, level)
	}
	c.JSON(http.StatusOK, resp)
}

// Move returns a move definition.
// GET /api/moves/:name
func (h *DexHandler) Move(c *gin.Context) {
	mv, ok := h.dex.Move(pokedex.Normalize(c.Param("name")))
	if !ok {
		abort(c, http.StatusNotFound, "move not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"move": mv})
}
