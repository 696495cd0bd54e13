package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cory-johannsen/pokesim/internal/game/typechart"
)

// parseDefend reads ?defend=a,b as one or two distinct types.
func parseDefend(c *gin.Context) ([]typechart.Type, error) {
	raw := strings.TrimSpace(c.Query("defend"))
	if raw == "" {
		return nil, fmt.Errorf("defend is required")
	}
	parts := strings.Split(raw, ",")
	if len(parts) > 2 {
		return nil, fmt.Errorf("defend takes one or two types, got %d", len(parts))
	}
	out := make([]typechart.Type, 0, len(parts))
	for _, p := range parts {
		t, err := typechart.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if len(out) == 2 && out[0] == out[1] {
		return nil, fmt.Errorf("duplicate defend type %q", out[0])
	}
	return out, nil
}

// Effectiveness reports the multiplier of one attack type.
// GET /api/types/:attack?defend=water,flying
func Effectiveness(c *gin.Context) {
	attack, err := typechart.Parse(c.Param("attack"))
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	defend, err := parseDefend(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	m := typechart.Effectiveness(attack, defend...)
	c.JSON(http.StatusOK, gin.H{
		"attack":     attack,
		"defend":     defend,
		"multiplier": m,
		"message":    typechart.Describe(m),
	})
}

// Matchups groups all attack types against a defender.
// GET /api/types/matchups?defend=fire,flying
func Matchups(c *gin.Context) {
	defend, err := parseDefend(c)
	if err != nil {
		abort(c, http.StatusBadRequest, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"defend": defend, "matchups": typechart.Matchups(defend...)})
}
