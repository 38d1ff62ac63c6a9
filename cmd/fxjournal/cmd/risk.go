package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/risk"
	"github.com/rustyeddy/fxjournal/trade"
)

var riskCmd = &cobra.Command{
	Use:   "risk",
	Short: "Position sizing, policy checks and risk reports",
	Long: `Risk tools for planning and reviewing trades.

Subcommands:
  size   - Suggest a position size for a risk budget
  check  - Evaluate a planned trade against the risk policy
  report - Analyze risk taken across closed trades

Examples:
  fxjournal risk size --equity 10000 --risk 0.01 --pair EURUSD --entry 1.0850 --stop 1.0800
  fxjournal risk check --account <id> --pair EURUSD --units 10000 --entry 1.0850 --stop 1.0800 --target 1.0950
  fxjournal risk report --account <id>`,
}

var riskSizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Suggest a position size for a risk budget",
	Args:  cobra.NoArgs,
	RunE:  runRiskSize,
}

var riskCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate a planned trade against the risk policy",
	Args:  cobra.NoArgs,
	RunE:  runRiskCheck,
}

var riskReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Analyze risk taken across closed trades",
	Args:  cobra.NoArgs,
	RunE:  runRiskReport,
}

var (
	riskEquity  float64
	riskPct     float64
	riskPair    string
	riskEntry   float64
	riskStop    float64
	riskTarget  float64
	riskUnits   float64
	riskAccount string
)

func init() {
	rootCmd.AddCommand(riskCmd)
	riskCmd.AddCommand(riskSizeCmd)
	riskCmd.AddCommand(riskCheckCmd)
	riskCmd.AddCommand(riskReportCmd)

	riskSizeCmd.Flags().Float64Var(&riskEquity, "equity", 0, "account equity (required)")
	riskSizeCmd.Flags().Float64Var(&riskPct, "risk", 0, "risk fraction, e.g. 0.01 (default from config)")
	riskSizeCmd.Flags().StringVarP(&riskPair, "pair", "p", "", "currency pair (required)")
	riskSizeCmd.Flags().Float64VarP(&riskEntry, "entry", "e", 0, "entry price (required)")
	riskSizeCmd.Flags().Float64Var(&riskStop, "stop", 0, "stop loss price (required)")
	riskSizeCmd.MarkFlagRequired("equity")
	riskSizeCmd.MarkFlagRequired("pair")
	riskSizeCmd.MarkFlagRequired("entry")
	riskSizeCmd.MarkFlagRequired("stop")

	riskCheckCmd.Flags().StringVarP(&riskAccount, "account", "a", "", "account ID (required)")
	riskCheckCmd.Flags().StringVarP(&riskPair, "pair", "p", "", "currency pair (required)")
	riskCheckCmd.Flags().Float64Var(&riskUnits, "units", 0, "position size in units (required)")
	riskCheckCmd.Flags().Float64VarP(&riskEntry, "entry", "e", 0, "entry price (required)")
	riskCheckCmd.Flags().Float64Var(&riskStop, "stop", 0, "stop loss price (required)")
	riskCheckCmd.Flags().Float64Var(&riskTarget, "target", 0, "take profit price")
	riskCheckCmd.MarkFlagRequired("account")
	riskCheckCmd.MarkFlagRequired("pair")
	riskCheckCmd.MarkFlagRequired("units")
	riskCheckCmd.MarkFlagRequired("entry")
	riskCheckCmd.MarkFlagRequired("stop")

	riskReportCmd.Flags().StringVarP(&riskAccount, "account", "a", "", "account ID (required)")
	riskReportCmd.MarkFlagRequired("account")
}

func runRiskSize(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	pct := riskPct
	if pct == 0 {
		pct = cfg.Preferences.DefaultRiskPct
	}

	res := risk.Calculate(risk.Inputs{
		Equity:     riskEquity,
		RiskPct:    pct,
		EntryPrice: riskEntry,
		StopPrice:  riskStop,
		Pair:       riskPair,
	})

	fmt.Printf("Position size:  %.0f units\n", res.Units)
	fmt.Printf("Stop distance:  %.1f pips\n", res.StopPips)
	fmt.Printf("Risk amount:    %.2f (%.2f%% of equity)\n", res.RiskAmount, 100*pct)
	return nil
}

func runRiskCheck(cmd *cobra.Command, args []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	acct, err := s.GetAccount(cmd.Context(), riskAccount)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	open, err := s.ListTradesByStatus(cmd.Context(), riskAccount, trade.Open)
	if err != nil {
		return fmt.Errorf("open trades: %w", err)
	}

	d := risk.Evaluate(cfg.Policy(), risk.TradeIntent{
		Pair:       riskPair,
		Units:      riskUnits,
		Entry:      riskEntry,
		Stop:       riskStop,
		TakeProfit: riskTarget,
	}, risk.AccountSnapshot{
		Balance:    acct.CurrentBalance,
		OpenTrades: len(open),
	}, risk.PnLSnapshot{})

	fmt.Printf("Planned risk: %.2f (%.2f%% of balance), RR %.2f\n",
		d.PlannedRisk, 100*d.PlannedRiskPct, d.PlannedRR)
	if d.Allowed {
		fmt.Println("✓ Trade allowed by policy")
		return nil
	}
	fmt.Println("✗ Trade violates policy:")
	for _, v := range d.Violations {
		fmt.Printf("  [%s] %s\n", v.Code, v.Msg)
	}
	return nil
}

func runRiskReport(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	acct, err := s.GetAccount(cmd.Context(), riskAccount)
	if err != nil {
		return fmt.Errorf("account: %w", err)
	}
	trades, err := s.ListTrades(cmd.Context(), riskAccount)
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	rep := risk.BuildReport(trades, acct.CurrentBalance)

	fmt.Println("Risk Report")
	fmt.Println("===========")
	fmt.Printf("Closed trades:    %d (%d with recorded risk)\n",
		rep.ClosedTrades, rep.TradesWithRisk)
	fmt.Printf("Average risk:     %.2f%% per trade\n", rep.AvgRiskPct)
	fmt.Printf("Average R:        %.2fR\n", rep.AvgRMultiple)
	fmt.Printf("Win rate:         %.1f%%\n", rep.WinRate)
	fmt.Printf("Profit factor:    %.2f\n", rep.ProfitFactor)

	fmt.Println("\nRisk distribution:")
	for _, b := range rep.RiskDistribution {
		fmt.Printf("  %-5s %d\n", b.Label, b.Count)
	}
	fmt.Println("\nR-multiple distribution:")
	for _, b := range rep.RMultipleDistribution {
		fmt.Printf("  %-5s %d\n", b.Label, b.Count)
	}

	fmt.Println("\nPerformance by risk level:")
	for _, p := range rep.PerformanceByRisk {
		if p.Trades == 0 {
			continue
		}
		fmt.Printf("  %-5s %d trades, %.1f%% win rate, %.2f P&L\n",
			p.Label, p.Trades, p.WinRate, p.TotalPL)
	}

	if len(rep.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, r := range rep.Recommendations {
			fmt.Printf("  [%s] %s\n", r.Level, r.Message)
		}
	}
	return nil
}
