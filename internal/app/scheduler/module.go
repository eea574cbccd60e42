package scheduler

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/internal/app/service/publication"
	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/pkg/config"
)

func run(
	lc fx.Lifecycle,
	s *Scheduler,
	cfg *config.Config,
	tiers *tierswitch.Service,
	settlement *payout.SettlementJob,
	content *publication.Service,
	log *zap.SugaredLogger,
) error {
	if err := RegisterJobs(s, cfg, tiers, settlement, content, log); err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
	return nil
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(run),
)
