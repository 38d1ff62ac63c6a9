package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxjournal/trade"
)

func ptr(v float64) *float64 { return &v }

func closedTrade(pl, risk, r float64) trade.Trade {
	exit := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	t := trade.Trade{
		CurrencyPair: "EURUSD",
		Direction:    trade.Buy,
		EntryTime:    exit.Add(-2 * time.Hour),
		EntryPrice:   1.2000,
		PositionSize: 10000,
		Status:       trade.Closed,
		ExitTime:     &exit,
		ProfitLoss:   ptr(pl),
	}
	if risk != 0 {
		t.RiskAmount = ptr(risk)
	}
	if r != 0 {
		t.RMultiple = ptr(r)
	}
	return t
}

func TestBuildReport_Averages(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade(100, 100, 1.0),  // 1% risk
		closedTrade(300, 150, 2.0),  // 1.5% risk
		closedTrade(-200, 200, -1.0), // 2% risk
		{CurrencyPair: "EURUSD", Status: trade.Open, EntryPrice: 1.1, PositionSize: 1000},
	}

	rep := BuildReport(trades, 10000)

	assert.Equal(t, 3, rep.ClosedTrades)
	assert.Equal(t, 3, rep.TradesWithRisk)
	assert.InDelta(t, 1.5, rep.AvgRiskPct, 1e-9)
	assert.InDelta(t, 2.0/3.0, rep.AvgRMultiple, 1e-9)
	assert.InDelta(t, 2.0, rep.ProfitFactor, 1e-9) // 400 win / 200 loss
	assert.InDelta(t, 100.0*2/3, rep.WinRate, 1e-9)
}

func TestBuildReport_Distributions(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade(50, 80, 0.5),    // 0.8% -> bucket 0-1%, <1R
		closedTrade(120, 150, 1.2),  // 1.5% -> 1-2%, 1-2R
		closedTrade(200, 250, 2.5),  // 2.5% -> 2-3%, 2-3R
		closedTrade(-400, 400, -1.0), // 4%  -> 3-5%, <1R
		closedTrade(900, 600, 5.5),  // 6%  -> 5%+, 5R+
	}

	rep := BuildReport(trades, 10000)

	var riskCounts []int
	for _, b := range rep.RiskDistribution {
		riskCounts = append(riskCounts, b.Count)
	}
	assert.Equal(t, []int{1, 1, 1, 1, 1}, riskCounts)

	var rCounts []int
	for _, b := range rep.RMultipleDistribution {
		rCounts = append(rCounts, b.Count)
	}
	assert.Equal(t, []int{2, 1, 1, 0, 1}, rCounts)
}

func TestBuildReport_PerformanceByRisk(t *testing.T) {
	t.Parallel()

	trades := []trade.Trade{
		closedTrade(100, 80, 0),  // 0-1% win
		closedTrade(50, 90, 0),   // 0-1% win
		closedTrade(-30, 70, 0),  // 0-1% loss
		closedTrade(-500, 450, 0), // 3-5% loss
	}

	rep := BuildReport(trades, 10000)

	low := rep.PerformanceByRisk[0]
	assert.Equal(t, "0-1%", low.Label)
	assert.Equal(t, 3, low.Trades)
	assert.InDelta(t, 120.0, low.TotalPL, 1e-9)
	assert.InDelta(t, 100.0*2/3, low.WinRate, 1e-6)

	high := rep.PerformanceByRisk[3]
	assert.Equal(t, 1, high.Trades)
	assert.InDelta(t, -500.0, high.TotalPL, 1e-9)
	assert.Zero(t, high.WinRate)
}

func TestBuildReport_Recommendations(t *testing.T) {
	t.Parallel()

	// Over-leveraged account: high average risk and sub-1R results.
	trades := []trade.Trade{
		closedTrade(-400, 400, -1.0),
		closedTrade(-350, 450, -0.8),
		closedTrade(200, 500, 0.4),
	}

	rep := BuildReport(trades, 10000)

	require.NotEmpty(t, rep.Recommendations)
	var levels []string
	for _, r := range rep.Recommendations {
		levels = append(levels, r.Level)
	}
	assert.Contains(t, levels, LevelWarning)

	// Warnings sort ahead of info/success.
	assert.Equal(t, LevelWarning, rep.Recommendations[0].Level)
	for i := 1; i < len(rep.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			rep.Recommendations[i].Priority, rep.Recommendations[i-1].Priority)
	}
}

func TestBuildReport_Empty(t *testing.T) {
	t.Parallel()

	rep := BuildReport(nil, 10000)

	assert.Zero(t, rep.ClosedTrades)
	assert.Zero(t, rep.AvgRiskPct)
	assert.Empty(t, rep.Recommendations)
	require.Len(t, rep.RiskDistribution, 5)
	assert.Equal(t, "5%+", rep.RiskDistribution[4].Label)
}
