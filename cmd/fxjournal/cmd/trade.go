package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/enrich"
	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/market"
	"github.com/rustyeddy/fxjournal/trade"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and inspect trades",
	Long: `Record new trades, close open ones and inspect the journal.

Subcommands:
  add    - Record a new trade
  close  - Close an open trade and recompute its metrics
  edit   - Change a trade's fields and recompute its metrics
  delete - Delete a trade and reconcile the account balance
  list   - List trades for an account
  show   - Show one trade in Org format
  today  - List trades closed today

Examples:
  fxjournal trade add --account <id> --pair EURUSD --side buy --entry 1.0850 --size 10000 --stop 1.0800 --target 1.0950
  fxjournal trade close <trade-id> --exit 1.0920 --pnl 70
  fxjournal trade edit <trade-id> --stop 1.0820 --notes "moved stop to breakeven"
  fxjournal trade delete <trade-id>
  fxjournal trade list --account <id> --status open
  fxjournal trade show <trade-id>`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a new trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeCloseCmd = &cobra.Command{
	Use:   "close <trade-id>",
	Short: "Close an open trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeClose,
}

var tradeEditCmd = &cobra.Command{
	Use:   "edit <trade-id>",
	Short: "Change a trade's fields",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeEdit,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade and reconcile the account balance",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades for an account",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade in Org format",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "List trades closed today",
	Args:  cobra.NoArgs,
	RunE:  runTradeToday,
}

var (
	tradeAccount string
	tradePair    string
	tradeSide    string
	tradeEntry   float64
	tradeSize    float64
	tradeStop    float64
	tradeTarget  float64
	tradeNotes   string

	tradeExit   float64
	tradePnL    float64
	tradeExitAt string
	tradeStatus string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeCloseCmd)
	tradeCmd.AddCommand(tradeEditCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeTodayCmd)

	tradeAddCmd.Flags().StringVarP(&tradeAccount, "account", "a", "", "account ID (required)")
	tradeAddCmd.Flags().StringVarP(&tradePair, "pair", "p", "", "currency pair, e.g. EURUSD (required)")
	tradeAddCmd.Flags().StringVar(&tradeSide, "side", "buy", "trade direction: buy or sell")
	tradeAddCmd.Flags().Float64VarP(&tradeEntry, "entry", "e", 0, "entry price (required)")
	tradeAddCmd.Flags().Float64VarP(&tradeSize, "size", "s", 0, "position size in units (required)")
	tradeAddCmd.Flags().Float64Var(&tradeStop, "stop", 0, "stop loss price")
	tradeAddCmd.Flags().Float64Var(&tradeTarget, "target", 0, "take profit price")
	tradeAddCmd.Flags().StringVar(&tradeNotes, "notes", "", "trade notes")
	tradeAddCmd.MarkFlagRequired("account")
	tradeAddCmd.MarkFlagRequired("pair")
	tradeAddCmd.MarkFlagRequired("entry")
	tradeAddCmd.MarkFlagRequired("size")

	tradeCloseCmd.Flags().Float64VarP(&tradeExit, "exit", "x", 0, "exit price (required)")
	tradeCloseCmd.Flags().Float64Var(&tradePnL, "pnl", 0, "realized profit or loss (required)")
	tradeCloseCmd.Flags().StringVar(&tradeExitAt, "at", "", "exit time (RFC3339, default now)")
	tradeCloseCmd.MarkFlagRequired("exit")
	tradeCloseCmd.MarkFlagRequired("pnl")

	tradeEditCmd.Flags().StringVarP(&tradePair, "pair", "p", "", "currency pair")
	tradeEditCmd.Flags().StringVar(&tradeSide, "side", "", "trade direction: buy or sell")
	tradeEditCmd.Flags().Float64VarP(&tradeEntry, "entry", "e", 0, "entry price")
	tradeEditCmd.Flags().Float64VarP(&tradeSize, "size", "s", 0, "position size in units")
	tradeEditCmd.Flags().Float64Var(&tradeStop, "stop", 0, "stop loss price (0 clears)")
	tradeEditCmd.Flags().Float64Var(&tradeTarget, "target", 0, "take profit price (0 clears)")
	tradeEditCmd.Flags().Float64Var(&tradePnL, "pnl", 0, "realized profit or loss")
	tradeEditCmd.Flags().StringVar(&tradeNotes, "notes", "", "trade notes")

	tradeListCmd.Flags().StringVarP(&tradeAccount, "account", "a", "", "account ID (required)")
	tradeListCmd.Flags().StringVar(&tradeStatus, "status", "", "filter by status: open or closed")
	tradeListCmd.MarkFlagRequired("account")
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var dir trade.Direction
	switch tradeSide {
	case "buy":
		dir = trade.Buy
	case "sell":
		dir = trade.Sell
	default:
		return fmt.Errorf("side must be buy or sell, got %q", tradeSide)
	}

	if _, err := s.GetAccount(cmd.Context(), tradeAccount); err != nil {
		return fmt.Errorf("account: %w", err)
	}

	t := trade.Trade{
		AccountID:    tradeAccount,
		CurrencyPair: market.Normalize(tradePair),
		Direction:    dir,
		EntryTime:    time.Now().UTC(),
		EntryPrice:   tradeEntry,
		PositionSize: tradeSize,
		Notes:        tradeNotes,
	}
	if tradeStop != 0 {
		t.StopLoss = &tradeStop
	}
	if tradeTarget != 0 {
		t.TakeProfit = &tradeTarget
	}

	m := trade.ComputeMetrics(&t)
	t.Pips = m.Pips
	t.RiskRewardRatio = m.RiskRewardRatio
	t.RMultiple = m.RMultiple
	t.RiskAmount = m.RiskAmount

	if err := s.CreateTrade(cmd.Context(), &t); err != nil {
		return fmt.Errorf("create trade: %w", err)
	}

	fmt.Printf("✓ Recorded %s %s %.0f @ %.5f (trade %s)\n",
		t.Direction, t.CurrencyPair, t.PositionSize, t.EntryPrice, t.ID)
	if t.RiskRewardRatio != nil {
		fmt.Printf("  Planned RR %.2f (policy minimum %.2f)\n",
			*t.RiskRewardRatio, cfg.Preferences.MinRR)
	}
	return nil
}

func runTradeClose(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	t, err := s.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	exitAt := time.Now().UTC()
	if tradeExitAt != "" {
		exitAt, err = time.Parse(time.RFC3339, tradeExitAt)
		if err != nil {
			return fmt.Errorf("exit time: %w", err)
		}
	}

	t.ExitPrice = &tradeExit
	t.ExitTime = &exitAt
	t.ProfitLoss = &tradePnL

	svc := enrich.New(s, log)
	if err := svc.CloseTrade(cmd.Context(), &t); err != nil {
		return fmt.Errorf("close trade: %w", err)
	}

	fmt.Printf("✓ Closed trade %s: P&L %.2f", t.ID, tradePnL)
	if t.RMultiple != nil {
		fmt.Printf(" (%.2fR)", *t.RMultiple)
	}
	fmt.Println()
	return nil
}

func runTradeEdit(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	t, err := s.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("pair") {
		t.CurrencyPair = market.Normalize(tradePair)
	}
	if flags.Changed("side") {
		switch tradeSide {
		case "buy":
			t.Direction = trade.Buy
		case "sell":
			t.Direction = trade.Sell
		default:
			return fmt.Errorf("side must be buy or sell, got %q", tradeSide)
		}
	}
	if flags.Changed("entry") {
		t.EntryPrice = tradeEntry
	}
	if flags.Changed("size") {
		t.PositionSize = tradeSize
	}
	if flags.Changed("stop") {
		if tradeStop == 0 {
			t.StopLoss = nil
		} else {
			t.StopLoss = &tradeStop
		}
	}
	if flags.Changed("target") {
		if tradeTarget == 0 {
			t.TakeProfit = nil
		} else {
			t.TakeProfit = &tradeTarget
		}
	}
	if flags.Changed("pnl") {
		t.ProfitLoss = &tradePnL
	}
	if flags.Changed("notes") {
		t.Notes = tradeNotes
	}

	svc := enrich.New(s, log)
	if err := svc.SaveTrade(cmd.Context(), &t); err != nil {
		return fmt.Errorf("edit trade: %w", err)
	}

	fmt.Printf("✓ Updated trade %s\n", t.ID)
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	svc := enrich.New(s, log)
	if err := svc.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}

	fmt.Printf("✓ Deleted trade %s and reconciled the account balance\n", args[0])
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var trades []trade.Trade
	switch tradeStatus {
	case "":
		trades, err = s.ListTrades(cmd.Context(), tradeAccount)
	case "open":
		trades, err = s.ListTradesByStatus(cmd.Context(), tradeAccount, trade.Open)
	case "closed":
		trades, err = s.ListTradesByStatus(cmd.Context(), tradeAccount, trade.Closed)
	default:
		return fmt.Errorf("status must be open or closed, got %q", tradeStatus)
	}
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	fmt.Println(journal.FormatTradesOrg(trades))
	return nil
}

func runTradeShow(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	t, err := s.GetTrade(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}

	fmt.Println(journal.FormatTradeOrg(t))
	return nil
}

func runTradeToday(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	now := time.Now().In(time.Local)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	trades, err := s.ListTradesClosedBetween(cmd.Context(), start, start.Add(24*time.Hour))
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	fmt.Println(journal.FormatTradesOrg(trades))
	return nil
}
