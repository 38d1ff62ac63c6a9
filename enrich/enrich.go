// enrich/enrich.go

// Package enrich applies the journal's repair-on-read policy: trades written
// before metrics existed, or imported with a stale status, self-heal the next
// time they pass through here. Dashboard, listing and import code paths all
// share this one implementation.
package enrich

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/trade"
)

// Service runs status inference, derived-metrics recomputation and balance
// reconciliation over stored trades. Trades are processed one at a time, in
// order, so two writes never interleave on the same account's balance.
type Service struct {
	store *journal.Store
	log   *zap.Logger
}

func New(store *journal.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, log: log}
}

// NeedsRepair reports whether a trade qualifies for a repair pass: it lacks
// all three of pips, risk:reward and R-multiple, or it carries exit evidence
// while still marked open.
func NeedsRepair(t *trade.Trade) bool {
	missingMetrics := t.Pips == nil && t.RiskRewardRatio == nil && t.RMultiple == nil
	staleStatus := t.HasExitEvidence() && t.Status != trade.Closed
	return missingMetrics || staleStatus
}

// RepairTrade corrects one trade in place and persists it. The corrected
// status and any newly computed metric are written; a metric that computes to
// nil never overwrites a previously stored value. Returns whether a write
// happened. The owning account is NOT reconciled here; callers do that once
// per account after the batch.
func (s *Service) RepairTrade(ctx context.Context, t *trade.Trade) (bool, error) {
	if !NeedsRepair(t) {
		return false, nil
	}

	t.Status = trade.InferStatus(t)

	m := trade.ComputeMetrics(t)
	t.Pips = keep(t.Pips, m.Pips)
	t.RiskRewardRatio = keep(t.RiskRewardRatio, m.RiskRewardRatio)
	t.RMultiple = keep(t.RMultiple, m.RMultiple)
	t.RiskAmount = keep(t.RiskAmount, m.RiskAmount)

	if err := s.store.UpdateTrade(ctx, t); err != nil {
		return false, fmt.Errorf("repair trade %q: %w", t.ID, err)
	}

	s.log.Debug("trade repaired",
		zap.String("trade_id", t.ID),
		zap.String("account_id", t.AccountID),
		zap.String("status", string(t.Status)))
	return true, nil
}

// RepairAccount runs a repair pass over every trade of one account, then
// reconciles the account balance. Returns the number of repaired trades.
func (s *Service) RepairAccount(ctx context.Context, accountID string) (int, error) {
	trades, err := s.store.ListTrades(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("repair account %q: %w", accountID, err)
	}

	repaired := 0
	for i := range trades {
		changed, err := s.RepairTrade(ctx, &trades[i])
		if err != nil {
			return repaired, err
		}
		if changed {
			repaired++
		}
	}

	balance, wrote, err := s.store.ReconcileBalance(ctx, accountID)
	if err != nil {
		return repaired, err
	}
	if wrote {
		s.log.Info("account balance reconciled",
			zap.String("account_id", accountID),
			zap.Float64("balance", balance),
			zap.Int("repaired_trades", repaired))
	}
	return repaired, nil
}

// RepairAll runs RepairAccount over every account, sequentially.
func (s *Service) RepairAll(ctx context.Context) (int, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return 0, fmt.Errorf("repair all: %w", err)
	}

	total := 0
	for _, a := range accounts {
		n, err := s.RepairAccount(ctx, a.ID)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// SaveTrade persists edits to an existing trade: status inference, metric
// recomputation, write, then one reconcile of the owning account. Both the
// edit and close paths funnel through here so no mutation can skip the
// metrics-then-reconcile sequence.
func (s *Service) SaveTrade(ctx context.Context, t *trade.Trade) error {
	t.Status = trade.InferStatus(t)

	m := trade.ComputeMetrics(t)
	t.Pips = keep(t.Pips, m.Pips)
	t.RiskRewardRatio = keep(t.RiskRewardRatio, m.RiskRewardRatio)
	t.RMultiple = keep(t.RMultiple, m.RMultiple)
	t.RiskAmount = keep(t.RiskAmount, m.RiskAmount)

	if err := s.store.UpdateTrade(ctx, t); err != nil {
		return fmt.Errorf("save trade %q: %w", t.ID, err)
	}

	if _, _, err := s.store.ReconcileBalance(ctx, t.AccountID); err != nil {
		return err
	}
	return nil
}

// CloseTrade records exit data on a trade, recomputes its metrics, persists
// it and reconciles the owning account. This is the form-submit path; the
// repair path handles rows closed out-of-band.
func (s *Service) CloseTrade(ctx context.Context, t *trade.Trade) error {
	return s.SaveTrade(ctx, t)
}

// DeleteTrade removes a trade and reconciles the owning account, so a
// deleted closed trade's P&L stops counting toward the balance immediately.
func (s *Service) DeleteTrade(ctx context.Context, tradeID string) error {
	t, err := s.store.GetTrade(ctx, tradeID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTrade(ctx, tradeID); err != nil {
		return err
	}

	balance, wrote, err := s.store.ReconcileBalance(ctx, t.AccountID)
	if err != nil {
		return err
	}
	if wrote {
		s.log.Info("account balance reconciled after delete",
			zap.String("account_id", t.AccountID),
			zap.String("trade_id", tradeID),
			zap.Float64("balance", balance))
	}
	return nil
}

// keep prefers the fresh value but never downgrades a stored metric to nil.
func keep(old, fresh *float64) *float64 {
	if fresh != nil {
		return fresh
	}
	return old
}
