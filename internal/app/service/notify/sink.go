package notify

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/models"
)

// Sink receives best-effort notifications about billing state changes.
// Implementations must never block billing flows; callers ignore failures.
type Sink interface {
	TierChanged(ctx context.Context, sub *models.Subscription, change *models.SubscriptionChange)
	DowngradeScheduled(ctx context.Context, pending *models.PendingSubscriptionChange)
	PayoutSettled(ctx context.Context, payout *models.CreatorPayout)
}

type logSink struct {
	log *zap.SugaredLogger
}

// NewLogSink returns a Sink that only logs. Swap in a real push/email sink by
// providing another Sink implementation to fx.
func NewLogSink(log *zap.SugaredLogger) Sink {
	return &logSink{log: log}
}

func (s *logSink) TierChanged(ctx context.Context, sub *models.Subscription, change *models.SubscriptionChange) {
	s.log.Infow("notify: tier changed",
		"subscription_id", sub.ID,
		"fan_id", sub.FanID,
		"to_tier_id", change.ToTierID,
		"billing_impact", change.BillingImpact,
	)
}

func (s *logSink) DowngradeScheduled(ctx context.Context, pending *models.PendingSubscriptionChange) {
	s.log.Infow("notify: downgrade scheduled",
		"subscription_id", pending.SubscriptionID,
		"to_tier_id", pending.ToTierID,
		"scheduled_date", pending.ScheduledDate,
	)
}

func (s *logSink) PayoutSettled(ctx context.Context, payout *models.CreatorPayout) {
	s.log.Infow("notify: payout settled",
		"payout_id", payout.ID,
		"creator_id", payout.CreatorID,
		"status", payout.Status,
		"amount", payout.Amount,
	)
}

var Module = fx.Options(
	fx.Provide(NewLogSink),
)
