package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tierhive/billing/internal/app/service/notify"
	"github.com/tierhive/billing/internal/app/service/provider"
	"github.com/tierhive/billing/internal/models"
	cfgpkg "github.com/tierhive/billing/pkg/config"
	"github.com/tierhive/billing/pkg/logctx"
	"github.com/tierhive/billing/pkg/metrics"
	"github.com/tierhive/billing/pkg/tool"
	"github.com/tierhive/billing/pkg/types"
)

// Dispatcher routes a disbursement to an external rail. Satisfied by
// *provider.Router.
type Dispatcher interface {
	Dispatch(ctx context.Context, method types.PayoutMethod, req *provider.DisbursementRequest) (*provider.DisbursementResult, error)
}

// SettlementJob settles every eligible creator's earnings for a period.
// Re-running a period is safe: already-settled creators are skipped via the
// deterministic payout id plus the (creator, period) unique index.
type SettlementJob struct {
	store      Store
	calculator *Calculator
	dispatcher Dispatcher
	cfg        *cfgpkg.Config
	log        *zap.SugaredLogger
	sink       notify.Sink
	now        func() time.Time
}

func NewSettlementJob(store Store, calculator *Calculator, dispatcher Dispatcher, cfg *cfgpkg.Config, log *zap.SugaredLogger, sink notify.Sink) *SettlementJob {
	return &SettlementJob{
		store:      store,
		calculator: calculator,
		dispatcher: dispatcher,
		cfg:        cfg,
		log:        log,
		sink:       sink,
		now:        time.Now,
	}
}

// RunReport summarizes one settlement run.
type RunReport struct {
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Creators    int       `json:"creators"`
	Settled     int       `json:"settled"`
	Failed      int       `json:"failed"`
	Skipped     int       `json:"skipped"`
}

type outcome int

const (
	outcomeSettled outcome = iota
	outcomeFailed
	outcomeSkipped
)

// SettlePreviousMonth runs settlement for the calendar month before now,
// evaluated in the scheduler timezone.
func (j *SettlementJob) SettlePreviousMonth(ctx context.Context) (*RunReport, error) {
	loc, err := time.LoadLocation(j.cfg.Scheduler.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid scheduler timezone %q: %w", j.cfg.Scheduler.Timezone, err)
	}
	start, end := PreviousMonth(j.now(), loc)
	return j.SettlePeriod(ctx, start, end)
}

// SettlePeriod settles every creator with completed transactions inside
// [start, end]. One creator's failure never aborts the rest.
func (j *SettlementJob) SettlePeriod(ctx context.Context, start, end time.Time) (*RunReport, error) {
	log := logctx.FromCtx(ctx, j.log)

	creators, err := j.store.CreatorsWithEarnings(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate creators for settlement: %w", err)
	}

	// fee snapshot for the whole run
	rates := RatesFromConfig(j.cfg)
	minimum := MinimumThreshold(j.cfg)

	report := &RunReport{PeriodStart: start, PeriodEnd: end, Creators: len(creators)}
	log.Infow("settlement run started",
		"period_start", start, "period_end", end, "creators", len(creators))

	for _, creatorID := range creators {
		out := j.settleCreatorIsolated(ctx, creatorID, start, end, rates, minimum)
		switch out {
		case outcomeSettled:
			report.Settled++
		case outcomeFailed:
			report.Failed++
		default:
			report.Skipped++
		}
	}

	log.Infow("settlement run finished",
		"settled", report.Settled, "failed", report.Failed, "skipped", report.Skipped)
	return report, nil
}

// settleCreatorIsolated contains the per-creator error/panic boundary.
func (j *SettlementJob) settleCreatorIsolated(ctx context.Context, creatorID string, start, end time.Time, rates FeeRates, minimum decimal.Decimal) (out outcome) {
	log := logctx.FromCtx(ctx, j.log)
	defer func() {
		if r := recover(); r != nil {
			log.Errorw("panic while settling creator", "creator_id", creatorID, "panic", r)
			out = outcomeFailed
		}
	}()

	out, err := j.settleCreator(ctx, creatorID, start, end, rates, minimum)
	if err != nil {
		log.Errorw("failed to settle creator", "creator_id", creatorID, "err", err)
		return outcomeFailed
	}
	return out
}

func (j *SettlementJob) settleCreator(ctx context.Context, creatorID string, start, end time.Time, rates FeeRates, minimum decimal.Decimal) (outcome, error) {
	log := logctx.FromCtx(ctx, j.log)

	existing, err := j.store.PayoutForPeriod(ctx, creatorID, start, end)
	if err != nil {
		return outcomeFailed, err
	}
	if existing != nil {
		log.Infow("period already settled, skipping",
			"creator_id", creatorID, "payout_id", existing.ID, "status", existing.Status)
		return outcomeSkipped, nil
	}

	summary, err := j.calculator.Calculate(ctx, creatorID, start, end, rates)
	if err != nil {
		return outcomeFailed, err
	}
	if summary.NetPayout.LessThan(minimum) {
		log.Infow("net payout below minimum, skipping",
			"creator_id", creatorID, "net", summary.NetPayout, "minimum", minimum)
		return outcomeSkipped, nil
	}

	account, err := j.store.AccountFor(ctx, creatorID)
	if err != nil {
		return outcomeFailed, err
	}
	if account == nil {
		log.Warnw("creator has no payout account, skipping", "creator_id", creatorID)
		return outcomeSkipped, nil
	}

	payout := &models.CreatorPayout{
		ID:          tool.DeterministicUUID(creatorID, start.UTC().Format(time.RFC3339), end.UTC().Format(time.RFC3339)),
		CreatorID:   creatorID,
		Amount:      summary.NetPayout,
		Currency:    j.cfg.Billing.Currency,
		Status:      types.PayoutStatusPending,
		PeriodStart: start,
		PeriodEnd:   end,
		Method:      account.Method,
	}
	if err := j.store.CreatePayout(ctx, payout); err != nil {
		return outcomeFailed, fmt.Errorf("failed to create payout row: %w", err)
	}

	result, err := j.dispatcher.Dispatch(ctx, account.Method, &provider.DisbursementRequest{
		PayoutID:  payout.ID,
		CreatorID: creatorID,
		Amount:    payout.Amount,
		Currency:  payout.Currency,
		Account:   account,
	})
	if err != nil || !result.Success {
		reason := "provider dispatch failed"
		if err != nil {
			reason = err.Error()
		} else if result.FailureReason != "" {
			reason = result.FailureReason
		}
		if markErr := j.store.MarkFailed(ctx, payout.ID, reason); markErr != nil {
			log.Errorw("failed to mark payout failed", "payout_id", payout.ID, "err", markErr)
		}
		payout.Status = types.PayoutStatusFailed
		metrics.PayoutsSettled.WithLabelValues(string(types.PayoutStatusFailed)).Inc()
		log.Warnw("payout failed", "payout_id", payout.ID, "creator_id", creatorID, "reason", reason)
		go j.sink.PayoutSettled(ctx, payout)
		return outcomeFailed, nil
	}

	processedAt := j.now()
	if err := j.store.MarkCompleted(ctx, payout.ID, result.TransactionID, processedAt); err != nil {
		return outcomeFailed, fmt.Errorf("failed to mark payout completed: %w", err)
	}
	payout.Status = types.PayoutStatusCompleted
	payout.TransactionID = &result.TransactionID
	payout.ProcessedAt = &processedAt
	metrics.PayoutsSettled.WithLabelValues(string(types.PayoutStatusCompleted)).Inc()
	log.Infow("payout completed",
		"payout_id", payout.ID, "creator_id", creatorID,
		"amount", payout.Amount, "transaction_id", result.TransactionID)
	go j.sink.PayoutSettled(ctx, payout)
	return outcomeSettled, nil
}
