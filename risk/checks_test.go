package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codes(d Decision) []string {
	out := make([]string, 0, len(d.Violations))
	for _, v := range d.Violations {
		out = append(out, v.Code)
	}
	return out
}

func TestEvaluate_Allowed(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      5000,
		Entry:      1.2000,
		Stop:       1.1990,
		TakeProfit: 1.2030,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.True(t, d.Allowed)
	assert.Empty(t, d.Violations)
	assert.InDelta(t, 5.0, d.PlannedRisk, 1e-9)
	assert.InDelta(t, 0.0005, d.PlannedRiskPct, 1e-12)
	assert.InDelta(t, 3.0, d.PlannedRR, 1e-9)
}

func TestEvaluate_MissingStop(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:  "EURUSD",
		Units: 1000,
		Entry: 1.2000,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	require.Len(t, d.Violations, 1)
	assert.Equal(t, "NO_STOP_OR_ENTRY", d.Violations[0].Code)
}

func TestEvaluate_NoUnits(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:  "EURUSD",
		Entry: 1.2000,
		Stop:  1.1950,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "NO_UNITS")
}

func TestEvaluate_RiskTooHigh(t *testing.T) {
	t.Parallel()

	// 10000 units * 0.0150 = 150 risk on a 10000 balance = 1.5% > max 1%.
	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      10000,
		Entry:      1.2000,
		Stop:       1.1850,
		TakeProfit: 1.2300,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "RISK_TOO_HIGH")
	assert.NotContains(t, codes(d), "RISK_OVER_DEFAULT")
}

func TestEvaluate_RiskOverDefault(t *testing.T) {
	t.Parallel()

	// 0.8% risk: under max 1% but over default 0.5%.
	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      10000,
		Entry:      1.2000,
		Stop:       1.1920,
		TakeProfit: 1.2200,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "RISK_OVER_DEFAULT")
	assert.NotContains(t, codes(d), "RISK_TOO_HIGH")
}

func TestEvaluate_RRTooLow(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      5000,
		Entry:      1.2000,
		Stop:       1.1990,
		TakeProfit: 1.2010,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "RR_TOO_LOW")
}

func TestEvaluate_TooManyOpenTrades(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      5000,
		Entry:      1.2000,
		Stop:       1.1990,
		TakeProfit: 1.2030,
	}, AccountSnapshot{Balance: 10000, OpenTrades: 3}, PnLSnapshot{})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "TOO_MANY_OPEN_TRADES")
}

func TestEvaluate_CircuitBreakers(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      5000,
		Entry:      1.2000,
		Stop:       1.1990,
		TakeProfit: 1.2030,
	}, AccountSnapshot{Balance: 10000}, PnLSnapshot{
		DayRealized:  -200, // limit is -150
		WeekRealized: -350, // limit is -300
	})

	assert.False(t, d.Allowed)
	assert.Contains(t, codes(d), "DAILY_LOSS_LIMIT")
	assert.Contains(t, codes(d), "WEEKLY_LOSS_LIMIT")
}

func TestEvaluate_CollectsMultipleViolations(t *testing.T) {
	t.Parallel()

	d := Evaluate(DefaultPolicy(), TradeIntent{
		Pair:       "EURUSD",
		Units:      20000,
		Entry:      1.2000,
		Stop:       1.1900,
		TakeProfit: 1.2010,
	}, AccountSnapshot{Balance: 10000, OpenTrades: 5}, PnLSnapshot{
		DayRealized: -500,
	})

	assert.False(t, d.Allowed)
	got := codes(d)
	assert.Contains(t, got, "RISK_TOO_HIGH")
	assert.Contains(t, got, "RR_TOO_LOW")
	assert.Contains(t, got, "TOO_MANY_OPEN_TRADES")
	assert.Contains(t, got, "DAILY_LOSS_LIMIT")
}
