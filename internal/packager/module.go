package packager

import (
	"github.com/go-core-fx/logger"
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"packager",
		logger.WithNamedLogger("packager"),
		fx.Provide(NewService),
	)
}
