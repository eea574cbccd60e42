package proration

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaysPerBillingPeriod is the fixed billing-period length used for proration.
// Calendar-accurate months are intentionally not used; see the billing docs
// before changing this.
const DaysPerBillingPeriod = 30

// SwitchInput is everything needed to price a mid-cycle tier switch.
type SwitchInput struct {
	CurrentPrice decimal.Decimal
	NewPrice     decimal.Decimal
	// NextBillingDate nil means no committed renewal date; a full period is
	// assumed to remain.
	NextBillingDate *time.Time
	Now             time.Time
}

// SwitchResult is the priced outcome of a tier switch.
// ProrationAmount > 0 means the fan owes a charge (upgrade); < 0 means the
// fan is owed a credit (downgrade).
type SwitchResult struct {
	ProrationAmount decimal.Decimal `json:"proration_amount"`
	IsUpgrade       bool            `json:"is_upgrade"`
	DaysRemaining   int             `json:"days_remaining"`
}

var periodDays = decimal.NewFromInt(DaysPerBillingPeriod)

// Calculate prices a tier switch. Pure: deterministic in its inputs, no I/O.
//
// Days remaining are whole days between now and the next billing date,
// floored at zero. The proration amount is (new - old) * days / 30 rounded to
// 2 decimals. A switch at equal price counts as a downgrade since no charge
// is due.
func Calculate(in SwitchInput) SwitchResult {
	days := DaysPerBillingPeriod
	if in.NextBillingDate != nil {
		days = int(in.NextBillingDate.Sub(in.Now).Hours() / 24)
		if days < 0 {
			days = 0
		}
	}

	amount := in.NewPrice.Sub(in.CurrentPrice).
		Mul(decimal.NewFromInt(int64(days))).
		Div(periodDays).
		Round(2)

	return SwitchResult{
		ProrationAmount: amount,
		IsUpgrade:       in.NewPrice.GreaterThan(in.CurrentPrice),
		DaysRemaining:   days,
	}
}
