// trade/trade.go
package trade

import "time"

// Direction is the side of a trade.
type Direction string

const (
	Buy  Direction = "buy"
	Sell Direction = "sell"
)

// Status is the lifecycle state of a trade. A trade is open until exit
// evidence exists, then closed; there is no path back to open.
type Status string

const (
	Open   Status = "open"
	Closed Status = "closed"
)

// Trade is one journal row: a single all-or-nothing position on one
// instrument. Nullable columns map to pointers; nil means the trader has not
// supplied the value yet.
type Trade struct {
	ID        string
	AccountID string
	TicketID  string // broker ticket, empty for manual entries

	CurrencyPair string
	Direction    Direction
	EntryTime    time.Time
	EntryPrice   float64
	PositionSize float64

	StopLoss   *float64
	TakeProfit *float64

	ExitTime   *time.Time
	ExitPrice  *float64
	ProfitLoss *float64 // realized P&L in account currency

	Status Status

	// Derived fields, recomputed together by ComputeMetrics.
	Pips            *float64
	RiskRewardRatio *float64
	RMultiple       *float64
	RiskAmount      *float64

	Notes     string
	CreatedAt time.Time
}

// HasExitEvidence reports whether any closing field is present: an exit time,
// an exit price, or a realized P&L.
func (t *Trade) HasExitEvidence() bool {
	return t.ExitTime != nil || t.ExitPrice != nil || t.ProfitLoss != nil
}

// IsClosed reports whether the trade counts toward its account balance. The
// engine treats profit_loss on closed trades as authoritative, so this must
// agree with InferStatus.
func (t *Trade) IsClosed() bool {
	return t.Status == Closed
}

// InferStatus is the single source of truth for the open/closed state
// machine. Exit evidence forces closed; a trade already marked closed stays
// closed even if exit fields were cleared out-of-band. Every code path that
// writes a trade must apply this before reconciling the account.
func InferStatus(t *Trade) Status {
	if t.Status == Closed || t.HasExitEvidence() {
		return Closed
	}
	return Open
}
