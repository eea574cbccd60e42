package publication

import "go.uber.org/fx"

var Module = fx.Options(
	fx.Provide(NewGormStore),
	fx.Provide(NewService),
)
