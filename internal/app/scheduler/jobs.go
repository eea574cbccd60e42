package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/app/service/payout"
	"github.com/tierhive/billing/internal/app/service/publication"
	"github.com/tierhive/billing/internal/app/service/tierswitch"
	"github.com/tierhive/billing/pkg/config"
)

const (
	JobPendingChanges     = "pending_changes"
	JobMonthlyPayouts     = "monthly_payouts"
	JobContentPublication = "content_publication"
)

// RegisterJobs binds the billing jobs to their configured cron specs.
func RegisterJobs(
	s *Scheduler,
	cfg *config.Config,
	tiers *tierswitch.Service,
	settlement *payout.SettlementJob,
	content *publication.Service,
	log *zap.SugaredLogger,
) error {
	jobs := []Job{
		{
			Name: JobPendingChanges,
			Spec: cfg.Scheduler.PendingChangesSpec,
			Run: func(ctx context.Context) error {
				applied, err := tiers.ApplyDuePendingChanges(ctx, time.Now())
				if applied > 0 {
					log.Infow("pending changes applied", "count", applied)
				}
				return err
			},
		},
		{
			Name: JobMonthlyPayouts,
			Spec: cfg.Scheduler.MonthlyPayoutsSpec,
			Run: func(ctx context.Context) error {
				report, err := settlement.SettlePreviousMonth(ctx)
				if err != nil {
					return err
				}
				log.Infow("monthly payout run finished",
					"period_start", report.PeriodStart,
					"period_end", report.PeriodEnd,
					"creators", report.Creators,
					"settled", report.Settled,
					"failed", report.Failed,
					"skipped", report.Skipped,
				)
				return nil
			},
		},
		{
			Name: JobContentPublication,
			Spec: cfg.Scheduler.ContentPublicationSpec,
			Run: func(ctx context.Context) error {
				_, err := content.PublishDue(ctx, time.Now())
				return err
			},
		},
	}

	for _, job := range jobs {
		if err := s.Register(job); err != nil {
			return err
		}
	}
	return nil
}
