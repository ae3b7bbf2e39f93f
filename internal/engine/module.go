package engine

import (
	"github.com/go-core-fx/logger"
	"github.com/mayaweb/udeploy/internal/builder"
	"github.com/mayaweb/udeploy/internal/packager"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"engine",
		logger.WithNamedLogger("engine"),
		fx.Provide(func(b *builder.Service) Builder { return b }, fx.Private),
		fx.Provide(func(p *packager.Service) Packager { return p }, fx.Private),
		fx.Provide(func() prometheus.Registerer { return prometheus.DefaultRegisterer }, fx.Private),
		fx.Provide(NewService),
	)
}
