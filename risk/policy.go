package risk

import "time"

// Policy holds the trader's self-imposed risk rules. Pure configuration:
// nothing here is derived from trade history.
type Policy struct {
	// Risk limits
	DefaultRiskPct float64 // 0.005
	MaxRiskPct     float64 // 0.01

	// Circuit breakers
	MaxDailyLossPct  float64 // 0.015
	MaxWeeklyLossPct float64 // 0.03

	// Exposure limits
	MaxOpenTrades int // 3

	// Trade constraints
	MinRR float64 // 1.5
}

// TradeIntent describes a trade about to be entered, before it becomes a
// journal row.
type TradeIntent struct {
	Now        time.Time
	Pair       string
	Units      float64
	Entry      float64
	Stop       float64
	TakeProfit float64
}

// AccountSnapshot is the state the policy is evaluated against.
type AccountSnapshot struct {
	Balance    float64
	OpenTrades int
}

// DefaultPolicy returns the conservative rule set used when no policy is
// configured.
func DefaultPolicy() Policy {
	return Policy{
		DefaultRiskPct:   0.005,
		MaxRiskPct:       0.01,
		MaxDailyLossPct:  0.015,
		MaxWeeklyLossPct: 0.03,
		MaxOpenTrades:    3,
		MinRR:            1.5,
	}
}

// PnLSnapshot carries realized P&L for the circuit breakers.
type PnLSnapshot struct {
	DayRealized  float64
	WeekRealized float64
}
