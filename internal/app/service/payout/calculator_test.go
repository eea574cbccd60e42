package payout

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

func defaultRates() FeeRates {
	return FeeRates{Commission: dec("0.05"), Processor: dec("0.035")}
}

func TestSummarize_TwoTransactionScenario(t *testing.T) {
	// two completed transactions of 20.00 each
	sum := Summarize("creator1", dec("40.00"), 2, defaultRates())

	require.True(t, sum.GrossRevenue.Equal(dec("40.00")))
	require.True(t, sum.PlatformFee.Equal(dec("2.00")), "got %s", sum.PlatformFee)
	require.True(t, sum.ProcessorFee.Equal(dec("1.40")), "got %s", sum.ProcessorFee)
	require.True(t, sum.NetPayout.Equal(dec("36.60")), "got %s", sum.NetPayout)
	require.Equal(t, int64(2), sum.TransactionCount)
}

func TestSummarize_NetNeverNegative(t *testing.T) {
	cases := []struct {
		gross      string
		commission string
		processor  string
	}{
		{"100.00", "0.80", "0.50"}, // rates sum past 100%
		{"0.00", "0.05", "0.035"},
		{"0.01", "1.00", "1.00"},
		{"55.55", "0.99", "0.02"},
	}
	for _, c := range cases {
		sum := Summarize("creator1", dec(c.gross), 1, FeeRates{
			Commission: dec(c.commission),
			Processor:  dec(c.processor),
		})
		require.False(t, sum.NetPayout.IsNegative(),
			"gross=%s commission=%s processor=%s net=%s", c.gross, c.commission, c.processor, sum.NetPayout)
	}
}

func TestSummarize_ZeroGross(t *testing.T) {
	sum := Summarize("creator1", decimal.Zero, 0, defaultRates())
	require.True(t, sum.NetPayout.IsZero())
	require.True(t, sum.PlatformFee.IsZero())
	require.True(t, sum.ProcessorFee.IsZero())
}

func TestPreviousMonth(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, loc)

	start, end := PreviousMonth(now, loc)
	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, loc), start)
	require.Equal(t, time.Date(2025, time.February, 28, 23, 59, 59, int(time.Second-time.Nanosecond), loc), end)
}

func TestPreviousMonth_JanuaryWrapsYear(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, loc)

	start, _ := PreviousMonth(now, loc)
	require.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, loc), start)
}

func TestMonthToDate(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, time.March, 15, 10, 30, 0, 0, loc)

	start, end := MonthToDate(now, loc)
	require.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, loc), start)
	require.Equal(t, now, end)
}

func TestMonthPeriod(t *testing.T) {
	loc := time.UTC
	start, end := MonthPeriod(2025, time.February, loc)
	require.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, loc), start)
	require.True(t, end.Before(time.Date(2025, time.March, 1, 0, 0, 0, 0, loc)))
	require.Equal(t, time.February, end.Month())
}
