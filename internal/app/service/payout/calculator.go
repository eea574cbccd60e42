package payout

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tierhive/billing/pkg/config"
)

// FeeRates is a snapshot of the platform fee configuration. It is passed into
// every calculation explicitly so a config change mid-run cannot produce mixed
// rates, and so the fee math stays pure.
type FeeRates struct {
	Commission decimal.Decimal
	Processor  decimal.Decimal
}

func RatesFromConfig(cfg *config.Config) FeeRates {
	return FeeRates{
		Commission: decimal.NewFromFloat(cfg.Billing.CommissionRate),
		Processor:  decimal.NewFromFloat(cfg.Billing.ProcessorFeeRate),
	}
}

// MinimumThreshold returns the smallest net payout worth disbursing.
func MinimumThreshold(cfg *config.Config) decimal.Decimal {
	return decimal.NewFromFloat(cfg.Billing.MinimumPayoutThreshold)
}

// EarningsSummary is a creator's aggregated earnings for a period.
type EarningsSummary struct {
	CreatorID        string          `json:"creator_id"`
	PeriodStart      time.Time       `json:"period_start"`
	PeriodEnd        time.Time       `json:"period_end"`
	GrossRevenue     decimal.Decimal `json:"gross_revenue"`
	PlatformFee      decimal.Decimal `json:"platform_fee"`
	ProcessorFee     decimal.Decimal `json:"processor_fee"`
	NetPayout        decimal.Decimal `json:"net_payout"`
	TransactionCount int64           `json:"transaction_count"`
}

// Summarize applies fee deductions to a gross figure. Pure. The net payout is
// floored at zero even if the configured rates sum past 100%.
func Summarize(creatorID string, gross decimal.Decimal, count int64, rates FeeRates) EarningsSummary {
	platformFee := gross.Mul(rates.Commission).Round(2)
	processorFee := gross.Mul(rates.Processor).Round(2)
	net := gross.Sub(platformFee).Sub(processorFee)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return EarningsSummary{
		CreatorID:        creatorID,
		GrossRevenue:     gross,
		PlatformFee:      platformFee,
		ProcessorFee:     processorFee,
		NetPayout:        net,
		TransactionCount: count,
	}
}

// Calculator aggregates completed transactions into earnings figures.
type Calculator struct {
	store Store
}

func NewCalculator(store Store) *Calculator {
	return &Calculator{store: store}
}

// Calculate sums the creator's completed transactions processed within
// [periodStart, periodEnd] and applies the given fee snapshot.
func (c *Calculator) Calculate(ctx context.Context, creatorID string, periodStart, periodEnd time.Time, rates FeeRates) (*EarningsSummary, error) {
	gross, count, err := c.store.EarningsFor(ctx, creatorID, periodStart, periodEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate earnings for creator %s: %w", creatorID, err)
	}
	summary := Summarize(creatorID, gross, count, rates)
	summary.PeriodStart = periodStart
	summary.PeriodEnd = periodEnd
	return &summary, nil
}

// PreviousMonth returns the bounds of the calendar month before now in loc.
func PreviousMonth(now time.Time, loc *time.Location) (time.Time, time.Time) {
	firstOfCurrent := time.Date(now.In(loc).Year(), now.In(loc).Month(), 1, 0, 0, 0, 0, loc)
	start := firstOfCurrent.AddDate(0, -1, 0)
	end := firstOfCurrent.Add(-time.Nanosecond)
	return start, end
}

// MonthToDate returns the bounds of the current month so far in loc.
func MonthToDate(now time.Time, loc *time.Location) (time.Time, time.Time) {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, loc)
	return start, now
}

// MonthPeriod returns the bounds of an explicit calendar month in loc.
func MonthPeriod(year int, month time.Month, loc *time.Location) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}
