// journal/sqlite.go
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/fxjournal/pkg/id"
	"github.com/rustyeddy/fxjournal/trade"
)

// Store is the SQLite-backed record store for accounts, trades and import
// logs. All methods surface store errors to the caller; nothing is retried or
// swallowed here.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path and ensures
// the schema exists. WAL mode keeps readers from blocking the single writer.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal db %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping journal db %q: %w", path, err)
	}

	// The sqlite3 driver benefits from a single connection; SQLite serializes
	// writers anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize journal schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// CreateAccount inserts a new account. A missing ID is assigned; a zero
// current balance is seeded from the initial balance.
func (s *Store) CreateAccount(ctx context.Context, a *Account) error {
	if a.ID == "" {
		a.ID = id.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.CurrentBalance == 0 {
		a.CurrentBalance = a.InitialBalance
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts
		(id, name, broker, currency, initial_balance, current_balance, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Broker, a.Currency, a.InitialBalance, a.CurrentBalance, a.IsActive, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create account %q: %w", a.Name, err)
	}
	return nil
}

// GetAccount returns one account by ID.
func (s *Store) GetAccount(ctx context.Context, accountID string) (Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, broker, currency, initial_balance, current_balance, is_active, created_at
		FROM accounts WHERE id = ?`, accountID)

	var a Account
	err := row.Scan(&a.ID, &a.Name, &a.Broker, &a.Currency,
		&a.InitialBalance, &a.CurrentBalance, &a.IsActive, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return Account{}, fmt.Errorf("account %q not found", accountID)
		}
		return Account{}, fmt.Errorf("get account %q: %w", accountID, err)
	}
	return a, nil
}

// ListAccounts returns all accounts ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, broker, currency, initial_balance, current_balance, is_active, created_at
		FROM accounts ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []Account
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Broker, &a.Currency,
			&a.InitialBalance, &a.CurrentBalance, &a.IsActive, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return out, nil
}

// UpdateAccountBalance writes a new current balance. Only the reconciler
// should call this.
func (s *Store) UpdateAccountBalance(ctx context.Context, accountID string, balance float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE accounts SET current_balance = ? WHERE id = ?`, balance, accountID)
	if err != nil {
		return fmt.Errorf("update balance for account %q: %w", accountID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update balance for account %q: %w", accountID, err)
	}
	if n == 0 {
		return fmt.Errorf("account %q not found", accountID)
	}
	return nil
}

const tradeColumns = `id, account_id, ticket_id, currency_pair, direction,
	entry_time, entry_price, position_size, stop_loss, take_profit,
	exit_time, exit_price, profit_loss, status,
	pips, risk_reward_ratio, r_multiple, risk_amount, notes, created_at`

// CreateTrade inserts a trade row. A missing ID is assigned and the status is
// inferred from exit evidence when unset.
func (s *Store) CreateTrade(ctx context.Context, t *trade.Trade) error {
	if t.ID == "" {
		t.ID = id.New()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.Status == "" {
		t.Status = trade.InferStatus(t)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.AccountID, t.TicketID, t.CurrencyPair, string(t.Direction),
		t.EntryTime, t.EntryPrice, t.PositionSize, nullFloat(t.StopLoss), nullFloat(t.TakeProfit),
		nullTime(t.ExitTime), nullFloat(t.ExitPrice), nullFloat(t.ProfitLoss), string(t.Status),
		nullFloat(t.Pips), nullFloat(t.RiskRewardRatio), nullFloat(t.RMultiple), nullFloat(t.RiskAmount),
		t.Notes, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create trade: %w", err)
	}
	return nil
}

// UpdateTrade writes every mutable column of an existing trade.
func (s *Store) UpdateTrade(ctx context.Context, t *trade.Trade) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE trades SET
			ticket_id = ?, currency_pair = ?, direction = ?,
			entry_time = ?, entry_price = ?, position_size = ?,
			stop_loss = ?, take_profit = ?,
			exit_time = ?, exit_price = ?, profit_loss = ?, status = ?,
			pips = ?, risk_reward_ratio = ?, r_multiple = ?, risk_amount = ?, notes = ?
		WHERE id = ?`,
		t.TicketID, t.CurrencyPair, string(t.Direction),
		t.EntryTime, t.EntryPrice, t.PositionSize,
		nullFloat(t.StopLoss), nullFloat(t.TakeProfit),
		nullTime(t.ExitTime), nullFloat(t.ExitPrice), nullFloat(t.ProfitLoss), string(t.Status),
		nullFloat(t.Pips), nullFloat(t.RiskRewardRatio), nullFloat(t.RMultiple), nullFloat(t.RiskAmount),
		t.Notes, t.ID,
	)
	if err != nil {
		return fmt.Errorf("update trade %q: %w", t.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update trade %q: %w", t.ID, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", t.ID)
	}
	return nil
}

// DeleteTrade removes a trade row. Callers must reconcile the owning account
// afterwards; the deleted trade's contribution to the balance goes with it.
func (s *Store) DeleteTrade(ctx context.Context, tradeID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, tradeID)
	if err != nil {
		return fmt.Errorf("delete trade %q: %w", tradeID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete trade %q: %w", tradeID, err)
	}
	if n == 0 {
		return fmt.Errorf("trade %q not found", tradeID)
	}
	return nil
}

// CreateImportLog opens an import batch record in the processing state.
func (s *Store) CreateImportLog(ctx context.Context, l *ImportLog) error {
	if l.ID == "" {
		l.ID = id.New()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.Status == "" {
		l.Status = ImportProcessing
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO import_logs
		(id, account_id, file_name, broker_format, status, total_rows,
		 imported_rows, skipped_rows, error_rows, error_details, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.AccountID, l.FileName, l.BrokerFormat, l.Status, l.TotalRows,
		l.ImportedRows, l.SkippedRows, l.ErrorRows, l.ErrorDetails, l.CreatedAt, nullTime(l.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("create import log for %q: %w", l.FileName, err)
	}
	return nil
}

// FinishImportLog records the outcome of an import batch.
func (s *Store) FinishImportLog(ctx context.Context, l *ImportLog) error {
	now := time.Now().UTC()
	l.CompletedAt = &now

	_, err := s.db.ExecContext(ctx, `
		UPDATE import_logs SET
			status = ?, total_rows = ?, imported_rows = ?, skipped_rows = ?,
			error_rows = ?, error_details = ?, completed_at = ?
		WHERE id = ?`,
		l.Status, l.TotalRows, l.ImportedRows, l.SkippedRows,
		l.ErrorRows, l.ErrorDetails, l.CompletedAt, l.ID,
	)
	if err != nil {
		return fmt.Errorf("finish import log %q: %w", l.ID, err)
	}
	return nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullTime(v *time.Time) any {
	if v == nil {
		return nil
	}
	return *v
}
