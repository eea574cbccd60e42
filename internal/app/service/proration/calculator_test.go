package proration

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCalculate_UpgradeTenDaysRemaining(t *testing.T) {
	now := time.Unix(1735689600, 0) // 2025-01-01 UTC
	next := now.Add(10 * 24 * time.Hour)

	res := Calculate(SwitchInput{
		CurrentPrice:    dec("5.00"),
		NewPrice:        dec("15.00"),
		NextBillingDate: &next,
		Now:             now,
	})

	require.True(t, res.IsUpgrade)
	require.Equal(t, 10, res.DaysRemaining)
	require.True(t, res.ProrationAmount.Equal(dec("3.33")), "got %s", res.ProrationAmount)
}

func TestCalculate_DowngradeMirrorsUpgrade(t *testing.T) {
	now := time.Unix(1735689600, 0)
	next := now.Add(10 * 24 * time.Hour)

	res := Calculate(SwitchInput{
		CurrentPrice:    dec("15.00"),
		NewPrice:        dec("5.00"),
		NextBillingDate: &next,
		Now:             now,
	})

	require.False(t, res.IsUpgrade)
	require.True(t, res.ProrationAmount.Equal(dec("-3.33")), "got %s", res.ProrationAmount)
}

func TestCalculate_SymmetryNetsToZero(t *testing.T) {
	now := time.Unix(1735689600, 0)

	prices := [][2]string{
		{"5.00", "15.00"},
		{"9.99", "24.99"},
		{"3.50", "7.25"},
		{"12.00", "12.01"},
	}
	for days := 0; days <= 30; days++ {
		next := now.Add(time.Duration(days) * 24 * time.Hour)
		for _, p := range prices {
			up := Calculate(SwitchInput{CurrentPrice: dec(p[0]), NewPrice: dec(p[1]), NextBillingDate: &next, Now: now})
			down := Calculate(SwitchInput{CurrentPrice: dec(p[1]), NewPrice: dec(p[0]), NextBillingDate: &next, Now: now})
			net := up.ProrationAmount.Add(down.ProrationAmount)
			require.True(t, net.IsZero(), "days=%d prices=%v net=%s", days, p, net)
		}
	}
}

func TestCalculate_EqualPriceIsNotAnUpgrade(t *testing.T) {
	now := time.Unix(1735689600, 0)
	next := now.Add(12 * 24 * time.Hour)

	res := Calculate(SwitchInput{
		CurrentPrice:    dec("10.00"),
		NewPrice:        dec("10.00"),
		NextBillingDate: &next,
		Now:             now,
	})

	require.False(t, res.IsUpgrade)
	require.True(t, res.ProrationAmount.IsZero())
}

func TestCalculate_PastBillingDateFloorsAtZeroDays(t *testing.T) {
	now := time.Unix(1735689600, 0)
	next := now.Add(-3 * 24 * time.Hour)

	res := Calculate(SwitchInput{
		CurrentPrice:    dec("5.00"),
		NewPrice:        dec("15.00"),
		NextBillingDate: &next,
		Now:             now,
	})

	require.Equal(t, 0, res.DaysRemaining)
	require.True(t, res.ProrationAmount.IsZero())
	require.True(t, res.IsUpgrade)
}

func TestCalculate_MissingBillingDateAssumesFullPeriod(t *testing.T) {
	now := time.Unix(1735689600, 0)

	res := Calculate(SwitchInput{
		CurrentPrice: dec("5.00"),
		NewPrice:     dec("15.00"),
		Now:          now,
	})

	require.Equal(t, DaysPerBillingPeriod, res.DaysRemaining)
	require.True(t, res.ProrationAmount.Equal(dec("10.00")), "got %s", res.ProrationAmount)
}

func TestCalculate_PartialDayDoesNotCount(t *testing.T) {
	now := time.Unix(1735689600, 0)
	next := now.Add(10*24*time.Hour + 6*time.Hour)

	res := Calculate(SwitchInput{
		CurrentPrice:    dec("5.00"),
		NewPrice:        dec("15.00"),
		NextBillingDate: &next,
		Now:             now,
	})

	require.Equal(t, 10, res.DaysRemaining)
}
