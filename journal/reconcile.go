// journal/reconcile.go
package journal

import (
	"context"
	"fmt"
	"math"
)

// BalanceTolerance is the maximum drift, in currency units, between the
// stored current balance and the recomputed one before the reconciler
// rewrites it. Values within tolerance are left alone to avoid needless
// write churn.
const BalanceTolerance = 0.01

// ReconcileBalance recomputes an account's authoritative balance as
// initial_balance + sum of closed trades' profit_loss and writes it back if
// the stored value has drifted beyond BalanceTolerance. Returns the
// authoritative balance and whether a write happened. Safe to call
// redundantly; a second call with no intervening trade changes is a no-op.
func (s *Store) ReconcileBalance(ctx context.Context, accountID string) (float64, bool, error) {
	acct, err := s.GetAccount(ctx, accountID)
	if err != nil {
		return 0, false, fmt.Errorf("reconcile account %q: %w", accountID, err)
	}

	sum, err := s.SumClosedProfitLoss(ctx, accountID)
	if err != nil {
		return 0, false, fmt.Errorf("reconcile account %q: %w", accountID, err)
	}

	balance := acct.InitialBalance + sum
	if math.Abs(balance-acct.CurrentBalance) <= BalanceTolerance {
		return balance, false, nil
	}

	if err := s.UpdateAccountBalance(ctx, accountID, balance); err != nil {
		return balance, false, fmt.Errorf("reconcile account %q: %w", accountID, err)
	}
	return balance, true, nil
}
