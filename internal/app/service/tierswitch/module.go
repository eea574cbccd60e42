package tierswitch

import "go.uber.org/fx"

// Module exposes the tier-switch service via Fx.
var Module = fx.Options(
	fx.Provide(NewGormStore),
	fx.Provide(NewService),
)
