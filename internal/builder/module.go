package builder

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"builder",
		logger.WithNamedLogger("builder"),
		fx.Provide(NewService),
	)
}
