package risk

import "math"

// PlannedRisk computes the absolute currency amount lost if the stop is hit.
// Quote currency is assumed to be the account currency; multi-currency
// conversion is out of the journal's scope.
func PlannedRisk(units, entry, stop float64) float64 {
	return units * math.Abs(entry-stop)
}

// RR is the planned reward:risk ratio for an entry/stop/target triple.
// Returns 0 when the stop sits on the entry.
func RR(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	if risk == 0 {
		return 0
	}
	return math.Abs(takeProfit-entry) / risk
}

// RiskPct expresses a planned risk amount as a fraction of equity.
func RiskPct(plannedRisk, equity float64) float64 {
	if equity <= 0 {
		return math.Inf(1)
	}
	return plannedRisk / equity
}
