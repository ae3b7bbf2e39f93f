package internal

import (
	"context"

	"github.com/capcom6/go-infra-fx/validator"
	"github.com/go-core-fx/fiberfx"
	"github.com/go-core-fx/healthfx"
	"github.com/go-core-fx/logger"
	"github.com/mayaweb/udeploy/internal/builder"
	"github.com/mayaweb/udeploy/internal/config"
	"github.com/mayaweb/udeploy/internal/deployments"
	"github.com/mayaweb/udeploy/internal/engine"
	"github.com/mayaweb/udeploy/internal/git"
	"github.com/mayaweb/udeploy/internal/packager"
	"github.com/mayaweb/udeploy/internal/platforms"
	"github.com/mayaweb/udeploy/internal/providers"
	"github.com/mayaweb/udeploy/internal/server"
	"github.com/mayaweb/udeploy/pkg/badgerfx"
	"github.com/mayaweb/udeploy/pkg/openapifx"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Run() {
	fx.New(
		// CORE MODULES
		logger.Module(),
		logger.WithFxDefaultLogger(),
		badgerfx.Module(),
		healthfx.Module(),
		fiberfx.Module(),
		openapifx.Module(),
		validator.Module,
		//
		// APP MODULES
		config.Module(),
		server.Module(),
		git.Module(),
		//
		// BUSINESS MODULES
		fx.Provide(func() healthfx.Version { return healthfx.Version{Version: "0.1.0", ReleaseID: 1} }),
		platforms.Module(),
		builder.Module(),
		packager.Module(),
		deployments.Module(),
		providers.Module(),
		engine.Module(),
		//
		// LIFECYCLE MANAGEMENT
		fx.Invoke(func(lc fx.Lifecycle, platforms *platforms.Registry, logger *zap.Logger) {
			lc.Append(fx.Hook{
				OnStart: func(_ context.Context) error {
					logger.Info("udeploy engine starting up", zap.Strings("platforms", platforms.IDs()))
					return nil
				},
				OnStop: func(_ context.Context) error {
					logger.Info("udeploy engine shutting down")
					return nil
				},
			})
		}),
	).Run()
}
