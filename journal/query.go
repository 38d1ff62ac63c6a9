// journal/query.go
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rustyeddy/fxjournal/trade"
)

// GetTrade returns a single trade by ID.
func (s *Store) GetTrade(ctx context.Context, tradeID string) (trade.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+` FROM trades WHERE id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return trade.Trade{}, fmt.Errorf("trade %q not found", tradeID)
		}
		return trade.Trade{}, fmt.Errorf("get trade %q: %w", tradeID, err)
	}
	return t, nil
}

// GetTradeByTicket returns an account's trade carrying a broker ticket
// number. sql.ErrNoRows is wrapped when no trade matches.
func (s *Store) GetTradeByTicket(ctx context.Context, accountID, ticketID string) (trade.Trade, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE account_id = ? AND ticket_id = ?`, accountID, ticketID)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return trade.Trade{}, fmt.Errorf("ticket %q not found for account %q", ticketID, accountID)
		}
		return trade.Trade{}, fmt.Errorf("get ticket %q: %w", ticketID, err)
	}
	return t, nil
}

// ListTrades returns all trades for an account, newest entry first.
func (s *Store) ListTrades(ctx context.Context, accountID string) ([]trade.Trade, error) {
	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE account_id = ?
		ORDER BY entry_time DESC`, accountID)
}

// ListTradesByStatus returns an account's trades in one lifecycle state,
// newest entry first.
func (s *Store) ListTradesByStatus(ctx context.Context, accountID string, status trade.Status) ([]trade.Trade, error) {
	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE account_id = ? AND status = ?
		ORDER BY entry_time DESC`, accountID, string(status))
}

// ListAllTrades returns every trade in the journal, oldest entry first, for
// cross-account reporting.
func (s *Store) ListAllTrades(ctx context.Context) ([]trade.Trade, error) {
	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades ORDER BY entry_time ASC`)
}

// ListTradesClosedBetween returns trades whose exit_time is within
// [start, end), oldest first.
func (s *Store) ListTradesClosedBetween(ctx context.Context, start, end time.Time) ([]trade.Trade, error) {
	return s.queryTrades(ctx, `
		SELECT `+tradeColumns+` FROM trades
		WHERE exit_time IS NOT NULL AND exit_time >= ? AND exit_time < ?
		ORDER BY exit_time ASC`, start, end)
}

// SumClosedProfitLoss totals realized P&L over an account's closed trades.
// NULL profit_loss rows count as zero.
func (s *Store) SumClosedProfitLoss(ctx context.Context, accountID string) (float64, error) {
	var sum float64
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(COALESCE(profit_loss, 0)), 0)
		FROM trades
		WHERE account_id = ? AND status = 'closed'`, accountID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum closed P&L for account %q: %w", accountID, err)
	}
	return sum, nil
}

func (s *Store) queryTrades(ctx context.Context, query string, args ...any) ([]trade.Trade, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	defer rows.Close()

	var out []trade.Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, fmt.Errorf("scan trade: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query trades: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (trade.Trade, error) {
	var (
		t         trade.Trade
		direction string
		status    string
		stopLoss  sql.NullFloat64
		takeProf  sql.NullFloat64
		exitTime  sql.NullTime
		exitPrice sql.NullFloat64
		pnl       sql.NullFloat64
		pips      sql.NullFloat64
		rr        sql.NullFloat64
		rMultiple sql.NullFloat64
		riskAmt   sql.NullFloat64
	)

	err := row.Scan(
		&t.ID, &t.AccountID, &t.TicketID, &t.CurrencyPair, &direction,
		&t.EntryTime, &t.EntryPrice, &t.PositionSize, &stopLoss, &takeProf,
		&exitTime, &exitPrice, &pnl, &status,
		&pips, &rr, &rMultiple, &riskAmt, &t.Notes, &t.CreatedAt,
	)
	if err != nil {
		return trade.Trade{}, err
	}

	t.Direction = trade.Direction(direction)
	t.Status = trade.Status(status)
	t.StopLoss = fromNullFloat(stopLoss)
	t.TakeProfit = fromNullFloat(takeProf)
	t.ExitTime = fromNullTime(exitTime)
	t.ExitPrice = fromNullFloat(exitPrice)
	t.ProfitLoss = fromNullFloat(pnl)
	t.Pips = fromNullFloat(pips)
	t.RiskRewardRatio = fromNullFloat(rr)
	t.RMultiple = fromNullFloat(rMultiple)
	t.RiskAmount = fromNullFloat(riskAmt)

	return t, nil
}

func fromNullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func fromNullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
