// journal/org.go
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/fxjournal/trade"
)

// FormatTradeOrg renders a trade as an Org-mode block suitable for pasting
// into a written journal. Structured facts live in a PROPERTIES drawer for
// easy search; the narrative headings are left for the trader to fill in.
func FormatTradeOrg(t trade.Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.CurrencyPair, t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":ACCOUNT_ID: %s\n", t.AccountID))
	if t.TicketID != "" {
		b.WriteString(fmt.Sprintf(":TICKET: %s\n", t.TicketID))
	}
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.CurrencyPair))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(fmt.Sprintf(":SIZE: %g\n", t.PositionSize))
	b.WriteString(fmt.Sprintf(":ENTRY_TIME: %s\n", t.EntryTime.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	writeOptFloat(&b, "STOP_LOSS", t.StopLoss, "%.5f")
	writeOptFloat(&b, "TAKE_PROFIT", t.TakeProfit, "%.5f")
	if t.ExitTime != nil {
		b.WriteString(fmt.Sprintf(":EXIT_TIME: %s\n", t.ExitTime.UTC().Format(time.RFC3339)))
	}
	writeOptFloat(&b, "EXIT_PRICE", t.ExitPrice, "%.5f")
	writeOptFloat(&b, "PROFIT_LOSS", t.ProfitLoss, "%.2f")
	writeOptFloat(&b, "PIPS", t.Pips, "%.1f")
	writeOptFloat(&b, "RISK_REWARD", t.RiskRewardRatio, "%.2f")
	writeOptFloat(&b, "R_MULTIPLE", t.RMultiple, "%.2f")
	writeOptFloat(&b, "RISK_AMOUNT", t.RiskAmount, "%.2f")
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []trade.Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func writeOptFloat(b *strings.Builder, key string, v *float64, format string) {
	if v == nil {
		return
	}
	b.WriteString(fmt.Sprintf(":%s: "+format+"\n", key, *v))
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
