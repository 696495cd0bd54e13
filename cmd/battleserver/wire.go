//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/cory-johannsen/pokesim/internal/config"
	"github.com/cory-johannsen/pokesim/internal/server"
)

func initializeServer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*server.Lifecycle, func(), error) {
	wire.Build(
		provideDex,
		provideStrategies,
		provideStore,
		provideEngine,
		provideSimulator,
		provideRouter,
		provideLifecycle,
	)
	return nil, nil, nil
}
