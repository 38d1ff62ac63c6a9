package risk

import "fmt"

type Violation struct {
	Code string
	Msg  string
}

// Decision is the outcome of evaluating a trade intent against the policy.
// Allowed flips to false on the first violation; all violations are
// collected so the trader sees every broken rule at once.
type Decision struct {
	Allowed    bool
	Violations []Violation

	PlannedRisk    float64
	PlannedRiskPct float64
	PlannedRR      float64
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

// Evaluate checks a trade intent against the trader's risk policy. This is
// advisory: the journal records whatever the trader actually does, but the
// decision is shown before entry.
func Evaluate(p Policy, intent TradeIntent, acct AccountSnapshot, pnl PnLSnapshot) Decision {
	d := Decision{Allowed: true}

	if intent.Entry == 0 || intent.Stop == 0 {
		d.add("NO_STOP_OR_ENTRY", "entry/stop must be set")
		return d
	}
	if intent.Units == 0 {
		d.add("NO_UNITS", "units must be non-zero")
		return d
	}

	d.PlannedRisk = PlannedRisk(intent.Units, intent.Entry, intent.Stop)
	d.PlannedRiskPct = RiskPct(d.PlannedRisk, acct.Balance)
	d.PlannedRR = RR(intent.Entry, intent.Stop, intent.TakeProfit)

	if d.PlannedRiskPct > p.MaxRiskPct {
		d.add("RISK_TOO_HIGH",
			fmt.Sprintf("planned risk %.2f%% exceeds max %.2f%%",
				100*d.PlannedRiskPct, 100*p.MaxRiskPct))
	} else if d.PlannedRiskPct > p.DefaultRiskPct {
		// Over default but under max: forces explicit override by the caller.
		d.add("RISK_OVER_DEFAULT",
			fmt.Sprintf("planned risk %.2f%% exceeds default %.2f%% (requires override)",
				100*d.PlannedRiskPct, 100*p.DefaultRiskPct))
	}
	if d.PlannedRR < p.MinRR {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %.2f below minimum %.2f", d.PlannedRR, p.MinRR))
	}

	if acct.OpenTrades >= p.MaxOpenTrades {
		d.add("TOO_MANY_OPEN_TRADES",
			fmt.Sprintf("open trades %d >= max %d", acct.OpenTrades, p.MaxOpenTrades))
	}

	dayLimit := -p.MaxDailyLossPct * acct.Balance
	if pnl.DayRealized <= dayLimit {
		d.add("DAILY_LOSS_LIMIT",
			fmt.Sprintf("day realized %.2f <= limit %.2f", pnl.DayRealized, dayLimit))
	}
	weekLimit := -p.MaxWeeklyLossPct * acct.Balance
	if pnl.WeekRealized <= weekLimit {
		d.add("WEEKLY_LOSS_LIMIT",
			fmt.Sprintf("week realized %.2f <= limit %.2f", pnl.WeekRealized, weekLimit))
	}

	return d
}
