// trade/metrics.go
package trade

import (
	"math"

	"github.com/rustyeddy/fxjournal/market"
)

// Metrics holds the derived analytics for one trade. The four fields are
// always computed together from the same input snapshot; a nil field means
// the inputs required for that calculation were absent or invalid, never that
// the computation failed.
type Metrics struct {
	Pips            *float64
	RiskRewardRatio *float64
	RMultiple       *float64
	RiskAmount      *float64
}

// ComputeMetrics derives pips, risk:reward, R-multiple and dollar risk from a
// trade's raw fields. Pure: no I/O, no mutation of t, identical inputs give
// identical outputs. Missing inputs degrade the affected fields to nil; a
// stop on the wrong side of entry (risk <= 0) is treated as an unset risk
// configuration, not an error.
//
// Zero-valued prices count as absent: broker exports emit "0" for unset
// stops and targets.
func ComputeMetrics(t *Trade) Metrics {
	var m Metrics

	// Pips need entry, exit and the pair's pip convention.
	if t.EntryPrice != 0 && present(t.ExitPrice) && t.CurrencyPair != "" {
		pip := market.PipSize(t.CurrencyPair)
		var pips float64
		if t.Direction == Buy {
			pips = (*t.ExitPrice - t.EntryPrice) / pip
		} else {
			pips = (t.EntryPrice - *t.ExitPrice) / pip
		}
		m.Pips = &pips
	}

	// Risk:reward and R-multiple need stop, target and entry.
	if present(t.StopLoss) && present(t.TakeProfit) && t.EntryPrice != 0 {
		var risk, reward float64
		if t.Direction == Buy {
			risk = t.EntryPrice - *t.StopLoss
			reward = *t.TakeProfit - t.EntryPrice
		} else {
			risk = *t.StopLoss - t.EntryPrice
			reward = t.EntryPrice - *t.TakeProfit
		}

		if risk > 0 {
			rr := reward / risk
			m.RiskRewardRatio = &rr

			// Closed trades report realized R against the dollar risk taken;
			// open trades stand in the planned ratio until they close.
			// Copy so the two fields never share a pointer.
			planned := rr
			if present(t.ExitPrice) && t.ExitTime != nil && t.ProfitLoss != nil {
				actualRisk := math.Abs(risk) * t.PositionSize
				if actualRisk > 0 {
					r := *t.ProfitLoss / actualRisk
					m.RMultiple = &r
				} else {
					m.RMultiple = &planned
				}
			} else {
				m.RMultiple = &planned
			}
		}
	}

	// Dollar risk only needs the stop.
	if present(t.StopLoss) && t.EntryPrice != 0 {
		var riskPerUnit float64
		if t.Direction == Buy {
			riskPerUnit = t.EntryPrice - *t.StopLoss
		} else {
			riskPerUnit = *t.StopLoss - t.EntryPrice
		}
		if riskPerUnit > 0 {
			amount := riskPerUnit * t.PositionSize
			m.RiskAmount = &amount
		}
	}

	return m
}

func present(v *float64) bool {
	return v != nil && *v != 0
}
