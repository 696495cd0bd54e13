// Package rest exposes the battle engine, the dex and stored battles over a
// gin JSON API.
package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/cory-johannsen/pokesim/internal/api/middleware"
	"github.com/cory-johannsen/pokesim/internal/game/battle"
	"github.com/cory-johannsen/pokesim/internal/simulator"
	"github.com/cory-johannsen/pokesim/internal/storage"
)

// Runner simulates one battle.
type Runner interface {
	Run(ctx context.Context, req simulator.Request) (simulator.Outcome, error)
}

// Deps are the collaborators the router wires into its handlers.
type Deps struct {
	Runner Runner
	Store  storage.Store
	Dex    battle.Dex
	Logger *zap.Logger
	// RateLimit is requests per second per client IP; <= 0 disables limiting.
	RateLimit float64
	Burst     int
}

// NewRouter builds the API engine. ctx bounds background middleware work.
//
// Precondition: Runner, Store, Dex and Logger must be non-nil.
func NewRouter(ctx context.Context, d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceID(), middleware.Recovery(d.Logger), middleware.Logger(d.Logger))
	if d.RateLimit > 0 {
		r.Use(middleware.RateLimit(ctx, rate.Limit(d.RateLimit), d.Burst))
	}

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	battles := NewBattleHandler(d.Runner, d.Store, d.Logger)
	dex := NewDexHandler(d.Dex)

	api := r.Group("/api")
	api.POST("/battles", battles.Create)
	api.GET("/battles", battles.List)
	api.GET("/battles/:id", battles.Get)
	api.GET("/species/:name", dex.Species)
	api.GET("/moves/:name", dex.Move)
	api.GET("/types/matchups", Matchups)
	api.GET("/types/:attack", Effectiveness)
	return r
}

// abort writes a JSON error body carrying the request's trace ID.
func abort(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "trace_id": middleware.GetTraceID(c)})
}
