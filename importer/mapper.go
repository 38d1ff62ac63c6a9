// importer/mapper.go
package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/trade"
)

// Broker exports disagree on header spelling; each logical column carries an
// alias set and matching is case-insensitive on the trimmed header.
var columnAliases = map[string][]string{
	"ticket":      {"Ticket", "Order"},
	"symbol":      {"Symbol", "Instrument"},
	"type":        {"Type", "Trade Side"},
	"open_time":   {"Open Time", "OpenTime", "Entry Time", "Time"},
	"open_price":  {"Price", "Open Price", "OpenPrice", "Entry Price"},
	"volume":      {"Volume", "Lots", "Size"},
	"stop_loss":   {"S / L", "S/L", "Stop Loss", "SL"},
	"take_profit": {"T / P", "T/P", "Take Profit", "TP"},
	"close_time":  {"Close Time", "CloseTime", "Exit Time"},
	"close_price": {"Close Price", "ClosePrice", "Exit Price"},
	"profit":      {"Profit", "P&L", "P/L", "PnL"},
}

// header maps lower-cased trimmed column names to their index in a record.
type header map[string]int

func newHeader(cols []string) header {
	h := make(header, len(cols))
	for i, c := range cols {
		h[strings.ToLower(strings.TrimSpace(c))] = i
	}
	return h
}

func (h header) value(rec []string, logical string) string {
	for _, alias := range columnAliases[logical] {
		if i, ok := h[strings.ToLower(alias)]; ok && i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
	}
	return ""
}

// hasTicketColumn is how the importer recognizes an MT4/MT5-style statement.
func (h header) hasTicketColumn() bool {
	for _, alias := range columnAliases["ticket"] {
		if _, ok := h[strings.ToLower(alias)]; ok {
			return true
		}
	}
	return false
}

// dateFormats covers MT4 statements plus the usual ISO-ish variants.
var dateFormats = []string{
	"2006.01.02 15:04:05",
	"2006.01.02 15:04",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parsePrice returns nil for empty or zero values: brokers emit "0" for an
// unset stop or target.
func parsePrice(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v == 0 {
		return nil
	}
	return &v
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// mapRow converts one statement row into a trade. Returns false for rows that
// are not trades: balance lines, summary rows, rows without a symbol or a
// positive entry price.
func mapRow(h header, rec []string, accountID string, now time.Time) (trade.Trade, bool) {
	symbol := h.value(rec, "symbol")
	pair := market.Normalize(symbol)
	if pair == "" {
		return trade.Trade{}, false
	}

	entryPrice, ok := parseFloat(h.value(rec, "open_price"))
	if !ok || entryPrice <= 0 {
		return trade.Trade{}, false
	}

	direction := trade.Sell
	if strings.Contains(strings.ToLower(h.value(rec, "type")), "buy") {
		direction = trade.Buy
	}

	entryTime, ok := parseDate(h.value(rec, "open_time"))
	if !ok {
		entryTime = now
	}

	volume, ok := parseFloat(h.value(rec, "volume"))
	if !ok {
		volume = 0
	}

	t := trade.Trade{
		AccountID:    accountID,
		TicketID:     h.value(rec, "ticket"),
		CurrencyPair: pair,
		Direction:    direction,
		EntryTime:    entryTime,
		EntryPrice:   entryPrice,
		PositionSize: volume,
		StopLoss:     parsePrice(h.value(rec, "stop_loss")),
		TakeProfit:   parsePrice(h.value(rec, "take_profit")),
		ExitPrice:    parsePrice(h.value(rec, "close_price")),
	}

	if closeTime, ok := parseDate(h.value(rec, "close_time")); ok {
		t.ExitTime = &closeTime
	}
	if pnl, ok := parseFloat(h.value(rec, "profit")); ok {
		t.ProfitLoss = &pnl
	}

	t.Status = trade.InferStatus(&t)
	return t, true
}
