package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/fxjournal/journal"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage journal accounts",
	Long: `Create and inspect trading accounts.

Subcommands:
  add     - Create a new account
  list    - List all accounts
  balance - Reconcile an account's balance against closed P&L

Examples:
  fxjournal account add --name "FTMO Demo" --broker FTMO --initial 10000
  fxjournal account list
  fxjournal account balance <account-id>`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new account",
	Args:  cobra.NoArgs,
	RunE:  runAccountAdd,
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all accounts",
	Args:  cobra.NoArgs,
	RunE:  runAccountList,
}

var accountBalanceCmd = &cobra.Command{
	Use:   "balance <account-id>",
	Short: "Reconcile an account balance against closed trade P&L",
	Args:  cobra.ExactArgs(1),
	RunE:  runAccountBalance,
}

var (
	accountName     string
	accountBroker   string
	accountCurrency string
	accountInitial  float64
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountCmd.AddCommand(accountBalanceCmd)

	accountAddCmd.Flags().StringVarP(&accountName, "name", "n", "", "account name (required)")
	accountAddCmd.Flags().StringVarP(&accountBroker, "broker", "b", "", "broker name")
	accountAddCmd.Flags().StringVar(&accountCurrency, "currency", "USD", "account currency")
	accountAddCmd.Flags().Float64VarP(&accountInitial, "initial", "i", 0, "initial balance (required)")
	accountAddCmd.MarkFlagRequired("name")
	accountAddCmd.MarkFlagRequired("initial")
}

func runAccountAdd(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	acct := journal.Account{
		Name:           accountName,
		Broker:         accountBroker,
		Currency:       accountCurrency,
		InitialBalance: accountInitial,
		IsActive:       true,
	}
	if err := s.CreateAccount(cmd.Context(), &acct); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	fmt.Printf("✓ Created account %s (%s, %.2f %s)\n",
		acct.ID, acct.Name, acct.InitialBalance, acct.Currency)
	return nil
}

func runAccountList(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	accounts, err := s.ListAccounts(cmd.Context())
	if err != nil {
		return fmt.Errorf("list accounts: %w", err)
	}
	if len(accounts) == 0 {
		fmt.Println("No accounts. Create one with: fxjournal account add")
		return nil
	}

	fmt.Printf("%-26s  %-20s  %-10s  %12s  %12s\n",
		"ID", "NAME", "BROKER", "INITIAL", "CURRENT")
	for _, a := range accounts {
		fmt.Printf("%-26s  %-20s  %-10s  %12.2f  %12.2f\n",
			a.ID, a.Name, a.Broker, a.InitialBalance, a.CurrentBalance)
	}
	return nil
}

func runAccountBalance(cmd *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	balance, wrote, err := s.ReconcileBalance(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("reconcile: %w", err)
	}

	if wrote {
		fmt.Printf("✓ Balance corrected to %.2f\n", balance)
	} else {
		fmt.Printf("Balance %.2f already consistent\n", balance)
	}
	return nil
}
