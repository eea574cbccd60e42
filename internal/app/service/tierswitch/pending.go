package tierswitch

import (
	"context"
	"fmt"
	"time"

	"github.com/tierhive/billing/internal/models"
	"github.com/tierhive/billing/pkg/logctx"
	"github.com/tierhive/billing/pkg/metrics"
	"github.com/tierhive/billing/pkg/types"
)

// ApplyDuePendingChanges applies every pending change whose scheduled date
// has passed. Each row is applied in its own transaction: a failure leaves
// that row pending for the next tick and never blocks the other rows. This is
// the only code path that moves a pending row to applied.
func (s *Service) ApplyDuePendingChanges(ctx context.Context, now time.Time) (int, error) {
	due, err := s.store.DuePending(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to query due pending changes: %w", err)
	}

	applied := 0
	log := logctx.FromCtx(ctx, s.log)
	for _, row := range due {
		ok, err := s.applyOne(ctx, row, now)
		if err != nil {
			metrics.PendingChangeFailures.Inc()
			log.Errorw("failed to apply pending change, will retry next tick",
				"change_id", row.ID, "subscription_id", row.SubscriptionID, "err", err)
			continue
		}
		if ok {
			applied++
			metrics.PendingChangesApplied.Inc()
		}
	}

	if len(due) > 0 {
		log.Infow("pending changes tick", "due", len(due), "applied", applied)
	}
	return applied, nil
}

func (s *Service) applyOne(ctx context.Context, row *models.PendingSubscriptionChange, now time.Time) (bool, error) {
	ok, err := s.store.ApplyPending(ctx, row.ID, func(sub *models.Subscription) (*models.SubscriptionChange, error) {
		before := *sub

		switch row.ChangeType {
		case types.ChangeTypeCancel:
			sub.Status = types.SubscriptionStatusCancelled
			sub.AutoRenew = false
		default:
			sub.TierID = row.ToTierID
		}
		// the deferred change refunds unused value from the pricier tier
		sub.ProrationCredit = sub.ProrationCredit.Add(row.ProrationAmount)

		return s.newAudit(&before, sub, row.FromTierID, row.ToTierID, row.ChangeType, row.ProrationAmount, now, types.BillingImpactNextCycle), nil
	})
	if err != nil || !ok {
		return ok, err
	}

	if sub, loadErr := s.store.SubscriptionByID(ctx, row.SubscriptionID); loadErr == nil {
		go s.sink.TierChanged(ctx, sub, &models.SubscriptionChange{
			SubscriptionID: sub.ID,
			FromTierID:     row.FromTierID,
			ToTierID:       row.ToTierID,
			ChangeType:     row.ChangeType,
			BillingImpact:  types.BillingImpactNextCycle,
		})
	}
	return true, nil
}
