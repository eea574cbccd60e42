package provider

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/platform/payoutapi"
	cfgpkg "github.com/tierhive/billing/pkg/config"
)

func newRouter(cfg *cfgpkg.Config, log *zap.SugaredLogger) *Router {
	mtn := cfg.PayoutProviders.MTNMoMo
	airtel := cfg.PayoutProviders.AirtelMoney
	bank := cfg.PayoutProviders.BankTransfer

	return NewRouter(log,
		NewMTNMoMo(payoutapi.New(mtn.BaseURL, mtn.APIKey, mtn.Timeout(), log)),
		NewAirtelMoney(payoutapi.New(airtel.BaseURL, airtel.APIKey, airtel.Timeout(), log)),
		NewBankTransfer(payoutapi.New(bank.BaseURL, bank.APIKey, bank.Timeout(), log)),
	)
}

// Module exposes the payout provider router via Fx.
var Module = fx.Options(
	fx.Provide(newRouter),
)
