// analytics/analytics.go

// Package analytics computes the journal's performance aggregates from closed
// trades: win rate, profit factor, streaks, equity curve and drawdown. Simple
// arithmetic over stored rows only; nothing here models or forecasts.
package analytics

import (
	"sort"
	"time"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/trade"
)

// Summary holds the aggregate view shown on the dashboard.
type Summary struct {
	TotalTrades     int
	ClosedTrades    int
	OpenTrades      int
	WinningTrades   int
	LosingTrades    int
	BreakevenTrades int

	WinRate      float64 // percent of closed trades
	ProfitFactor float64 // gross profit / gross loss, 0 when no losses
	TotalProfit  float64
	AverageWin   float64
	AverageLoss  float64 // positive magnitude
	AverageRR    float64
	LargestWin   float64
	LargestLoss  float64

	MaxWinStreak  int
	MaxLossStreak int

	StartingCapital float64
	CurrentCapital  float64
	TotalReturnPct  float64
	MaxDrawdownPct  float64

	ProfitByMonth   map[string]float64 // "2006-01" keys
	ProfitByWeekday map[time.Weekday]float64

	EquityCurve []EquityPoint
}

// EquityPoint is one step of the cumulative balance over closed trades.
type EquityPoint struct {
	Time    time.Time
	Balance float64
}

// Summarize aggregates closed trades across the given accounts. Trades are
// ordered by close time before streaks and the equity curve are derived, so
// callers may pass rows in any order.
func Summarize(trades []trade.Trade, accounts []journal.Account) *Summary {
	s := &Summary{
		ProfitByMonth:   make(map[string]float64),
		ProfitByWeekday: make(map[time.Weekday]float64),
	}

	for _, a := range accounts {
		s.StartingCapital += a.InitialBalance
		s.CurrentCapital += a.CurrentBalance
	}
	if s.StartingCapital > 0 {
		s.TotalReturnPct = (s.CurrentCapital - s.StartingCapital) / s.StartingCapital * 100
	}

	var closed []trade.Trade
	for _, t := range trades {
		s.TotalTrades++
		if t.IsClosed() {
			closed = append(closed, t)
		} else {
			s.OpenTrades++
		}
	}
	s.ClosedTrades = len(closed)
	if len(closed) == 0 {
		return s
	}

	sort.Slice(closed, func(i, j int) bool {
		return closedAt(closed[i]).Before(closedAt(closed[j]))
	})

	var grossProfit, grossLoss, rrSum float64
	var rrCount int
	var winStreak, lossStreak int

	balance := s.StartingCapital
	peak := balance
	s.EquityCurve = make([]EquityPoint, 0, len(closed))

	for _, t := range closed {
		pnl := pnlOf(t)
		s.TotalProfit += pnl

		switch {
		case pnl > 0:
			s.WinningTrades++
			grossProfit += pnl
			if pnl > s.LargestWin {
				s.LargestWin = pnl
			}
			winStreak++
			lossStreak = 0
			if winStreak > s.MaxWinStreak {
				s.MaxWinStreak = winStreak
			}
		case pnl < 0:
			s.LosingTrades++
			grossLoss += -pnl
			if pnl < s.LargestLoss {
				s.LargestLoss = pnl
			}
			lossStreak++
			winStreak = 0
			if lossStreak > s.MaxLossStreak {
				s.MaxLossStreak = lossStreak
			}
		default:
			s.BreakevenTrades++
			winStreak = 0
			lossStreak = 0
		}

		if t.RiskRewardRatio != nil && *t.RiskRewardRatio > 0 {
			rrSum += *t.RiskRewardRatio
			rrCount++
		}

		when := closedAt(t)
		s.ProfitByMonth[when.Format("2006-01")] += pnl
		s.ProfitByWeekday[when.Weekday()] += pnl

		balance += pnl
		s.EquityCurve = append(s.EquityCurve, EquityPoint{Time: when, Balance: balance})

		if balance > peak {
			peak = balance
		} else if peak > 0 {
			dd := (peak - balance) / peak * 100
			if dd > s.MaxDrawdownPct {
				s.MaxDrawdownPct = dd
			}
		}
	}

	s.WinRate = float64(s.WinningTrades) / float64(s.ClosedTrades) * 100
	if grossLoss > 0 {
		s.ProfitFactor = grossProfit / grossLoss
	}
	if s.WinningTrades > 0 {
		s.AverageWin = grossProfit / float64(s.WinningTrades)
	}
	if s.LosingTrades > 0 {
		s.AverageLoss = grossLoss / float64(s.LosingTrades)
	}
	if rrCount > 0 {
		s.AverageRR = rrSum / float64(rrCount)
	}

	return s
}

// BestWeekday returns the weekday with the highest total P&L. ok is false
// when no closed trades exist.
func (s *Summary) BestWeekday() (day time.Weekday, total float64, ok bool) {
	first := true
	for d, pl := range s.ProfitByWeekday {
		if first || pl > total {
			day, total, ok = d, pl, true
			first = false
		}
	}
	return day, total, ok
}

// WorstWeekday returns the weekday with the lowest total P&L.
func (s *Summary) WorstWeekday() (day time.Weekday, total float64, ok bool) {
	first := true
	for d, pl := range s.ProfitByWeekday {
		if first || pl < total {
			day, total, ok = d, pl, true
			first = false
		}
	}
	return day, total, ok
}

// closedAt prefers the exit time and falls back to entry for closed rows
// missing one.
func closedAt(t trade.Trade) time.Time {
	if t.ExitTime != nil {
		return *t.ExitTime
	}
	return t.EntryTime
}

func pnlOf(t trade.Trade) float64 {
	if t.ProfitLoss == nil {
		return 0
	}
	return *t.ProfitLoss
}
