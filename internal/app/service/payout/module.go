package payout

import (
	"go.uber.org/fx"

	"github.com/tierhive/billing/internal/app/service/provider"
)

// Module exposes the payout calculator and settlement job via Fx.
var Module = fx.Options(
	fx.Provide(NewGormStore),
	fx.Provide(NewCalculator),
	fx.Provide(func(r *provider.Router) Dispatcher { return r }),
	fx.Provide(NewSettlementJob),
)
