package tierswitch

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/tierhive/billing/internal/app/service/notify"
	"github.com/tierhive/billing/internal/app/service/proration"
	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/logctx"
	"github.com/tierhive/billing/pkg/tool"
	"github.com/tierhive/billing/pkg/types"
)

// Service orchestrates tier switches: immediate upgrades, deferred
// downgrades/cancels, and the scheduled application of pending changes.
type Service struct {
	store Store
	log   *zap.SugaredLogger
	sink  notify.Sink
	now   func() time.Time
}

func NewService(store Store, log *zap.SugaredLogger, sink notify.Sink) *Service {
	return &Service{store: store, log: log, sink: sink, now: time.Now}
}

// UpgradeResult is returned by Upgrade. When RequiresPayment is true nothing
// was mutated; the caller collects AmountDue externally and retries after the
// charge settles.
type UpgradeResult struct {
	RequiresPayment bool                 `json:"requires_payment"`
	ProrationAmount decimal.Decimal      `json:"proration_amount"`
	AmountDue       decimal.Decimal      `json:"amount_due"`
	Subscription    *models.Subscription `json:"subscription,omitempty"`
}

// DowngradeResult is returned by ScheduleDowngrade and ScheduleCancel.
type DowngradeResult struct {
	PendingChange *models.PendingSubscriptionChange `json:"pending_change"`
	ScheduledDate time.Time                         `json:"scheduled_date"`
	CreditAmount  decimal.Decimal                   `json:"credit_amount"`
}

func (s *Service) computeSwitch(ctx context.Context, subscriptionID, newTierID string) (*models.Subscription, *models.SubscriptionTier, proration.SwitchResult, error) {
	var zero proration.SwitchResult

	sub, err := s.store.SubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, nil, zero, err
	}
	newTier, err := s.store.TierByID(ctx, newTierID)
	if err != nil {
		return nil, nil, zero, err
	}
	currentTier, err := s.store.TierByID(ctx, sub.TierID)
	if err != nil {
		return nil, nil, zero, fmt.Errorf("failed to load current tier %s: %w", sub.TierID, err)
	}

	res := proration.Calculate(proration.SwitchInput{
		CurrentPrice:    currentTier.Price,
		NewPrice:        newTier.Price,
		NextBillingDate: sub.NextBillingDate,
		Now:             s.now(),
	})
	return sub, newTier, res, nil
}

// Upgrade switches a subscription to a pricier tier. When the prorated charge
// exceeds the fan's credit balance it returns a requires-payment result
// without touching state; otherwise the switch lands immediately.
func (s *Service) Upgrade(ctx context.Context, subscriptionID, newTierID string) (*UpgradeResult, error) {
	sub, newTier, res, err := s.computeSwitch(ctx, subscriptionID, newTierID)
	if err != nil {
		return nil, err
	}
	if !res.IsUpgrade {
		return nil, ErrNotAnUpgrade
	}

	amountDue := res.ProrationAmount.Sub(sub.ProrationCredit)
	if amountDue.IsPositive() {
		logctx.FromCtx(ctx, s.log).Infow("upgrade requires payment",
			"subscription_id", sub.ID, "to_tier_id", newTier.ID, "amount_due", amountDue)
		return &UpgradeResult{
			RequiresPayment: true,
			ProrationAmount: res.ProrationAmount,
			AmountDue:       amountDue,
		}, nil
	}

	before := *sub
	sub.TierID = newTier.ID
	sub.ProrationCredit = sub.ProrationCredit.Sub(res.ProrationAmount)
	if sub.ProrationCredit.IsNegative() {
		sub.ProrationCredit = decimal.Zero
	}

	audit := s.newAudit(&before, sub, before.TierID, newTier.ID, types.ChangeTypeUpgrade, res.ProrationAmount, s.now(), types.BillingImpactImmediate)
	if err := s.store.CommitSwitch(ctx, sub, audit); err != nil {
		return nil, fmt.Errorf("failed to commit upgrade: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("upgrade applied",
		"subscription_id", sub.ID, "from_tier_id", before.TierID, "to_tier_id", newTier.ID)
	go s.sink.TierChanged(ctx, sub, audit)

	return &UpgradeResult{
		RequiresPayment: false,
		ProrationAmount: res.ProrationAmount,
		AmountDue:       decimal.Zero,
		Subscription:    sub,
	}, nil
}

// ScheduleDowngrade defers a switch to a cheaper (or equal-priced) tier until
// the next billing date. The fan keeps current-tier access until then; the
// unused value becomes a proration credit when the change applies.
func (s *Service) ScheduleDowngrade(ctx context.Context, subscriptionID, newTierID string) (*DowngradeResult, error) {
	sub, newTier, res, err := s.computeSwitch(ctx, subscriptionID, newTierID)
	if err != nil {
		return nil, err
	}
	if res.IsUpgrade {
		return nil, ErrNotADowngrade
	}

	pending := &models.PendingSubscriptionChange{
		ID:              tool.GenerateUUIDV7(),
		SubscriptionID:  sub.ID,
		FromTierID:      sub.TierID,
		ToTierID:        newTier.ID,
		ChangeType:      types.ChangeTypeDowngrade,
		ScheduledDate:   s.scheduledDate(sub),
		ProrationAmount: res.ProrationAmount.Abs(),
		Status:          types.PendingChangeStatusPending,
	}
	if err := s.store.CreatePending(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to schedule downgrade: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("downgrade scheduled",
		"subscription_id", sub.ID, "to_tier_id", newTier.ID,
		"scheduled_date", pending.ScheduledDate, "credit", pending.ProrationAmount)
	go s.sink.DowngradeScheduled(ctx, pending)

	return &DowngradeResult{
		PendingChange: pending,
		ScheduledDate: pending.ScheduledDate,
		CreditAmount:  pending.ProrationAmount,
	}, nil
}

// ScheduleCancel defers a cancellation until the next billing date. Access is
// kept until then and no credit accrues: the fan received what was paid for.
func (s *Service) ScheduleCancel(ctx context.Context, subscriptionID string) (*DowngradeResult, error) {
	sub, err := s.store.SubscriptionByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	pending := &models.PendingSubscriptionChange{
		ID:              tool.GenerateUUIDV7(),
		SubscriptionID:  sub.ID,
		FromTierID:      sub.TierID,
		ToTierID:        sub.TierID,
		ChangeType:      types.ChangeTypeCancel,
		ScheduledDate:   s.scheduledDate(sub),
		ProrationAmount: decimal.Zero,
		Status:          types.PendingChangeStatusPending,
	}
	if err := s.store.CreatePending(ctx, pending); err != nil {
		return nil, fmt.Errorf("failed to schedule cancel: %w", err)
	}

	logctx.FromCtx(ctx, s.log).Infow("cancel scheduled",
		"subscription_id", sub.ID, "scheduled_date", pending.ScheduledDate)
	go s.sink.DowngradeScheduled(ctx, pending)

	return &DowngradeResult{
		PendingChange: pending,
		ScheduledDate: pending.ScheduledDate,
		CreditAmount:  decimal.Zero,
	}, nil
}

// CancelPending revokes a not-yet-applied change.
func (s *Service) CancelPending(ctx context.Context, changeID string) error {
	if err := s.store.CancelPending(ctx, changeID); err != nil {
		return err
	}
	logctx.FromCtx(ctx, s.log).Infow("pending change cancelled", "change_id", changeID)
	return nil
}

// ListPending returns the (at most one) pending change for a subscription.
func (s *Service) ListPending(ctx context.Context, subscriptionID string) ([]*models.PendingSubscriptionChange, error) {
	if _, err := s.store.SubscriptionByID(ctx, subscriptionID); err != nil {
		return nil, err
	}
	return s.store.PendingBySubscription(ctx, subscriptionID)
}

const defaultHistoryLimit = 20

// History returns the audit log, newest first.
func (s *Service) History(ctx context.Context, subscriptionID string, limit, offset int) ([]*models.SubscriptionChange, error) {
	if _, err := s.store.SubscriptionByID(ctx, subscriptionID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.History(ctx, subscriptionID, limit, offset)
}

func (s *Service) scheduledDate(sub *models.Subscription) time.Time {
	if sub.NextBillingDate != nil {
		return *sub.NextBillingDate
	}
	return s.now().Add(proration.DaysPerBillingPeriod * 24 * time.Hour)
}

func (s *Service) newAudit(before, after *models.Subscription, fromTier, toTier string, changeType types.ChangeType, amount decimal.Decimal, effective time.Time, impact types.BillingImpact) *models.SubscriptionChange {
	beforeCopy := *before
	afterCopy := *after
	return &models.SubscriptionChange{
		ID:              tool.GenerateUUIDV7(),
		SubscriptionID:  after.ID,
		FromTierID:      fromTier,
		ToTierID:        toTier,
		ChangeType:      changeType,
		ProrationAmount: amount,
		EffectiveDate:   effective,
		BillingImpact:   impact,
		Before:          datatypes.NewJSONType(&beforeCopy),
		After:           datatypes.NewJSONType(&afterCopy),
	}
}
