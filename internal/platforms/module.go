package platforms

import (
	"go.uber.org/fx"
)

func Module() fx.Option {
	return fx.Module(
		"platforms",
		fx.Provide(NewRegistry),
	)
}
