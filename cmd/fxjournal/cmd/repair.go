package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/enrich"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Repair missing derived metrics and reconcile balances",
	Long: `Walk the journal and fix incomplete rows.

For every trade: infer the status from exit evidence, recompute pips,
risk:reward, R-multiple and risk amount, and fill in anything missing
without discarding values already stored. Each account's balance is then
reconciled against its closed P&L.

Examples:
  fxjournal repair
  fxjournal repair --account <id>`,
	Args: cobra.NoArgs,
	RunE: runRepair,
}

var repairAccount string

func init() {
	rootCmd.AddCommand(repairCmd)

	repairCmd.Flags().StringVarP(&repairAccount, "account", "a", "", "repair a single account")
}

func runRepair(cmd *cobra.Command, args []string) error {
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

	var repaired int
	if repairAccount != "" {
		repaired, err = svc.RepairAccount(cmd.Context(), repairAccount)
	} else {
		repaired, err = svc.RepairAll(cmd.Context())
	}
	if err != nil {
		return fmt.Errorf("repair: %w", err)
	}

	if repaired == 0 {
		fmt.Println("Journal already consistent")
	} else {
		fmt.Printf("✓ Repaired %d trade(s)\n", repaired)
	}
	return nil
}
