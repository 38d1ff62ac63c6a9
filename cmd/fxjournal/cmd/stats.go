package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/analytics"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics",
	Long: `Summarize trading performance across all accounts.

Covers win rate, profit factor, streaks, drawdown, return on starting
capital and P&L broken down by month and weekday.

Example:
  fxjournal stats`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	accounts, err := s.ListAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	trades, err := s.ListAllTrades(cmd.Context())
	if err != nil {
		return fmt.Errorf("list trades: %w", err)
	}

	sum := analytics.Summarize(trades, accounts)

	fmt.Println("Performance Summary")
	fmt.Println("===================")
	fmt.Printf("Trades:          %d closed, %d open\n", sum.ClosedTrades, sum.OpenTrades)
	fmt.Printf("Win rate:        %.1f%%\n", sum.WinRate)
	fmt.Printf("Profit factor:   %.2f\n", sum.ProfitFactor)
	fmt.Printf("Total P&L:       %.2f\n", sum.TotalProfit)
	fmt.Printf("Average win:     %.2f\n", sum.AverageWin)
	fmt.Printf("Average loss:    %.2f\n", sum.AverageLoss)
	fmt.Printf("Average RR:      %.2f\n", sum.AverageRR)
	fmt.Printf("Largest win:     %.2f\n", sum.LargestWin)
	fmt.Printf("Largest loss:    %.2f\n", sum.LargestLoss)
	fmt.Printf("Best streak:     %d wins\n", sum.MaxWinStreak)
	fmt.Printf("Worst streak:    %d losses\n", sum.MaxLossStreak)
	fmt.Printf("Capital:         %.2f -> %.2f (%.2f%%)\n",
		sum.StartingCapital, sum.CurrentCapital, sum.TotalReturnPct)
	fmt.Printf("Max drawdown:    %.2f%%\n", sum.MaxDrawdownPct)

	if day, total, ok := sum.BestWeekday(); ok {
		fmt.Printf("Best weekday:    %s (%.2f)\n", day, total)
	}
	if day, total, ok := sum.WorstWeekday(); ok {
		fmt.Printf("Worst weekday:   %s (%.2f)\n", day, total)
	}

	if len(sum.ProfitByMonth) > 0 {
		fmt.Println("\nP&L by month:")
		months := make([]string, 0, len(sum.ProfitByMonth))
		for m := range sum.ProfitByMonth {
			months = append(months, m)
		}
		sort.Strings(months)
		for _, m := range months {
			fmt.Printf("  %s  %10.2f\n", m, sum.ProfitByMonth[m])
		}
	}
	return nil
}
