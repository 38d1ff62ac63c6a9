package risk

import (
	"fmt"
	"sort"

	"github.com/rustyeddy/fxjournal/trade"
)

var riskBucketLabels = []string{"0-1%", "1-2%", "2-3%", "3-5%", "5%+"}
var rMultipleBucketLabels = []string{"< 1R", "1-2R", "2-3R", "3-5R", "5R+"}

type Bucket struct {
	Label string
	Count int
}

// BucketPerformance aggregates closed-trade results per risk bucket.
type BucketPerformance struct {
	Label   string
	Trades  int
	TotalPL float64
	WinRate float64 // percent
}

const (
	LevelWarning = "warning"
	LevelInfo    = "info"
	LevelSuccess = "success"
)

type Recommendation struct {
	Level    string
	Message  string
	Priority int // 1 highest
}

// Report summarizes how risk was actually taken across closed trades,
// with distributions and plain-language recommendations.
type Report struct {
	ClosedTrades   int
	TradesWithRisk int
	AvgRiskPct     float64 // percent of balance
	AvgRMultiple   float64
	ProfitFactor   float64
	WinRate        float64 // percent

	RiskDistribution      []Bucket
	RMultipleDistribution []Bucket
	PerformanceByRisk     []BucketPerformance
	Recommendations       []Recommendation
}

func riskBucketIndex(pct float64) int {
	switch {
	case pct <= 1:
		return 0
	case pct <= 2:
		return 1
	case pct <= 3:
		return 2
	case pct <= 5:
		return 3
	default:
		return 4
	}
}

func rMultipleBucketIndex(r float64) int {
	switch {
	case r < 1:
		return 0
	case r < 2:
		return 1
	case r < 3:
		return 2
	case r < 5:
		return 3
	default:
		return 4
	}
}

// BuildReport analyzes closed trades against the account balance. Risk per
// trade is the stored risk amount as a percentage of balance; trades with no
// recorded risk are counted but excluded from the risk distributions.
func BuildReport(trades []trade.Trade, balance float64) Report {
	rep := Report{
		RiskDistribution:      make([]Bucket, len(riskBucketLabels)),
		RMultipleDistribution: make([]Bucket, len(rMultipleBucketLabels)),
		PerformanceByRisk:     make([]BucketPerformance, len(riskBucketLabels)),
	}
	for i, l := range riskBucketLabels {
		rep.RiskDistribution[i].Label = l
		rep.PerformanceByRisk[i].Label = l
	}
	for i, l := range rMultipleBucketLabels {
		rep.RMultipleDistribution[i].Label = l
	}

	var (
		riskSum, rSum       float64
		rCount              int
		wins                int
		grossWin, grossLoss float64
		winsByBucket        = make([]int, len(riskBucketLabels))
		highRiskTrades      int
	)

	for _, t := range trades {
		if !t.IsClosed() {
			continue
		}
		rep.ClosedTrades++

		pl := 0.0
		if t.ProfitLoss != nil {
			pl = *t.ProfitLoss
		}
		if pl > 0 {
			wins++
			grossWin += pl
		} else if pl < 0 {
			grossLoss += -pl
		}

		if t.RMultiple != nil {
			r := *t.RMultiple
			rSum += r
			rCount++
			rep.RMultipleDistribution[rMultipleBucketIndex(r)].Count++
		}

		if t.RiskAmount == nil || balance <= 0 {
			continue
		}
		pct := 100 * *t.RiskAmount / balance
		rep.TradesWithRisk++
		riskSum += pct
		if pct > 3 {
			highRiskTrades++
		}
		bi := riskBucketIndex(pct)
		rep.RiskDistribution[bi].Count++
		perf := &rep.PerformanceByRisk[bi]
		perf.Trades++
		perf.TotalPL += pl
		if pl > 0 {
			winsByBucket[bi]++
		}
	}

	for i := range rep.PerformanceByRisk {
		if n := rep.PerformanceByRisk[i].Trades; n > 0 {
			rep.PerformanceByRisk[i].WinRate = 100 * float64(winsByBucket[i]) / float64(n)
		}
	}
	if rep.TradesWithRisk > 0 {
		rep.AvgRiskPct = riskSum / float64(rep.TradesWithRisk)
	}
	if rCount > 0 {
		rep.AvgRMultiple = rSum / float64(rCount)
	}
	if rep.ClosedTrades > 0 {
		rep.WinRate = 100 * float64(wins) / float64(rep.ClosedTrades)
	}
	if grossLoss > 0 {
		rep.ProfitFactor = grossWin / grossLoss
	}

	rep.Recommendations = recommend(rep, highRiskTrades)
	return rep
}

func recommend(rep Report, highRiskTrades int) []Recommendation {
	var recs []Recommendation
	add := func(level, msg string, priority int) {
		recs = append(recs, Recommendation{Level: level, Message: msg, Priority: priority})
	}

	switch {
	case rep.AvgRiskPct > 3:
		add(LevelWarning, fmt.Sprintf(
			"average risk per trade is %.2f%%, above the recommended 1-2%%; reduce position sizes",
			rep.AvgRiskPct), 1)
	case rep.AvgRiskPct > 2:
		add(LevelInfo, fmt.Sprintf(
			"average risk per trade is %.2f%%; aim for 1-2%% per trade",
			rep.AvgRiskPct), 2)
	case rep.AvgRiskPct > 0:
		add(LevelSuccess, fmt.Sprintf(
			"average risk per trade is %.2f%%, within the recommended 1-2%% range",
			rep.AvgRiskPct), 3)
	}

	switch {
	case rep.AvgRMultiple > 0 && rep.AvgRMultiple < 1:
		add(LevelWarning, fmt.Sprintf(
			"average R-multiple is %.2fR; losses outweigh wins, aim for at least 1:2 risk:reward",
			rep.AvgRMultiple), 1)
	case rep.AvgRMultiple >= 1 && rep.AvgRMultiple < 2:
		add(LevelInfo, fmt.Sprintf(
			"average R-multiple is %.2fR; target 2R+ setups for better long-term results",
			rep.AvgRMultiple), 2)
	case rep.AvgRMultiple >= 2:
		add(LevelSuccess, fmt.Sprintf(
			"average R-multiple is %.2fR, strong reward for risk taken",
			rep.AvgRMultiple), 3)
	}

	if rep.WinRate > 0 && rep.WinRate < 40 && rep.AvgRMultiple > 0 && rep.AvgRMultiple < 1 {
		add(LevelWarning,
			"win rate is below 40% with R-multiple under 1R; refine entry criteria and exits", 1)
	}

	switch {
	case rep.ProfitFactor > 0 && rep.ProfitFactor < 1:
		add(LevelWarning, fmt.Sprintf(
			"profit factor is %.2f; losses exceed wins", rep.ProfitFactor), 1)
	case rep.ProfitFactor >= 1 && rep.ProfitFactor < 1.5:
		add(LevelInfo, fmt.Sprintf(
			"profit factor is %.2f; aim for 1.5+ for a sustainable edge", rep.ProfitFactor), 2)
	}

	if highRiskTrades > 0 {
		add(LevelWarning, fmt.Sprintf(
			"%d trade(s) risked more than 3%% of the account; keep every trade under 2%%",
			highRiskTrades), 1)
	}

	for _, p := range rep.PerformanceByRisk {
		if p.Trades > 0 && p.WinRate > 50 && p.TotalPL > 0 {
			add(LevelInfo, fmt.Sprintf(
				"best performance is in the %s risk bucket (%.1f%% win rate, %.2f P&L)",
				p.Label, p.WinRate, p.TotalPL), 2)
			break
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Priority < recs[j].Priority })
	return recs
}
