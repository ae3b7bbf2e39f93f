package providers

import (
	"github.com/go-core-fx/logger"
	"github.com/mayaweb/udeploy/internal/git"
	"github.com/mayaweb/udeploy/internal/platforms"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Config    Config
	Platforms *platforms.Registry
	Publisher *git.Service
	Logger    *zap.Logger
}

func Module() fx.Option {
	return fx.Module(
		"providers",
		logger.WithNamedLogger("providers"),
		fx.Provide(func(p Params) *Registry {
			return New(Deps{
				Platforms:   p.Platforms,
				Credentials: EnvCredentials{},
				Publisher:   p.Publisher,
				Config:      p.Config,
				Logger:      p.Logger,
			})
		}),
	)
}
