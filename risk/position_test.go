package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate_SimpleUSDQuote(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Equity:     10000,
		RiskPct:    0.01,
		EntryPrice: 1.2000,
		StopPrice:  1.1900,
		Pair:       "EURUSD",
	}

	got := Calculate(in)

	assert.InDelta(t, 100.0, got.StopPips, 1e-9)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 10000.0, got.Units, 1.0)
}

func TestCalculate_YenPair(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Equity:     5000,
		RiskPct:    0.02,
		EntryPrice: 150.00,
		StopPrice:  149.50,
		Pair:       "USDJPY",
	}

	got := Calculate(in)

	assert.InDelta(t, 50.0, got.StopPips, 1e-9)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 200.0, got.Units, 1.0)
}

func TestCalculate_StopAboveEntry(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Equity:     2000,
		RiskPct:    0.005,
		EntryPrice: 1.0000,
		StopPrice:  1.0100,
		Pair:       "GBPUSD",
	}

	got := Calculate(in)

	assert.InDelta(t, 100.0, got.StopPips, 1e-9)
	assert.InDelta(t, 10.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 1000.0, got.Units, 1.0)
}

func TestCalculate_StopOnEntry(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Equity:     10000,
		RiskPct:    0.01,
		EntryPrice: 1.1000,
		StopPrice:  1.1000,
		Pair:       "EURUSD",
	}

	got := Calculate(in)

	assert.Zero(t, got.Units)
	assert.Zero(t, got.StopPips)
	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
}

func TestCalculate_UnitsFloored(t *testing.T) {
	t.Parallel()

	in := Inputs{
		Equity:     3333,
		RiskPct:    0.01,
		EntryPrice: 1.2345,
		StopPrice:  1.2299,
		Pair:       "EURUSD",
	}

	got := Calculate(in)

	assert.Equal(t, got.Units, float64(int64(got.Units)))
	assert.LessOrEqual(t, got.Units*0.0046, in.Equity*in.RiskPct+1e-6)
}
