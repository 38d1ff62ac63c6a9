package risk

import (
	"math"

	"github.com/rustyeddy/fxjournal/market"
)

// Inputs feed a position-size suggestion for a new trade entry.
type Inputs struct {
	Equity     float64
	RiskPct    float64 // 0.005 = risk half a percent of equity
	EntryPrice float64
	StopPrice  float64
	Pair       string // determines the pip convention
}

// Result is the suggested position for the given risk budget.
type Result struct {
	Units      float64
	StopPips   float64
	RiskAmount float64
}

// Calculate suggests a whole-unit position size so that a stop-out loses
// RiskPct of equity. Zero units when the stop sits on the entry.
func Calculate(in Inputs) Result {
	pip := market.PipSize(in.Pair)
	stopPips := math.Abs(in.EntryPrice-in.StopPrice) / pip

	riskAmt := in.Equity * in.RiskPct
	if stopPips == 0 {
		return Result{RiskAmount: riskAmt}
	}

	units := riskAmt / (stopPips * pip)

	return Result{
		Units:      math.Floor(units),
		StopPips:   stopPips,
		RiskAmount: riskAmt,
	}
}
