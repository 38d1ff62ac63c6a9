package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/importer"
)

var importCmd = &cobra.Command{
	Use:   "import <statement-file>",
	Short: "Import an MT4/MT5 account statement",
	Long: `Import trades from an exported account statement.

Accepts a CSV file or a zip archive containing CSV files. Rows already in
the journal (matched by ticket number, or by entry time, pair and price)
are skipped. The account balance is reconciled after a successful import.

Examples:
  fxjournal import --account <id> statement.csv
  fxjournal import --account <id> statements.zip`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var importAccount string

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringVarP(&importAccount, "account", "a", "", "account ID (required)")
	importCmd.MarkFlagRequired("account")
}

func runImport(cmd *cobra.Command, args []string) error {
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

	im := importer.New(s, log)
	res, err := im.ImportFile(cmd.Context(), importAccount, args[0])
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("✓ Imported %d of %d rows (%s format)\n",
		res.Imported, res.Total, res.BrokerFormat)
	if res.Duplicates > 0 {
		fmt.Printf("  %d duplicate(s) skipped\n", res.Duplicates)
	}
	if res.Skipped > 0 {
		fmt.Printf("  %d non-trade row(s) skipped\n", res.Skipped)
	}
	if res.Imported > 0 {
		fmt.Printf("  Account balance now %.2f\n", res.NewBalance)
	}
	return nil
}
