package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/fxjournal/trade"
)

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "journal.db")

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func newTestAccount(t *testing.T, s *Store, initial float64) Account {
	t.Helper()

	a := Account{
		Name:           "demo",
		Broker:         "mt4",
		Currency:       "USD",
		InitialBalance: initial,
		IsActive:       true,
	}
	require.NoError(t, s.CreateAccount(context.Background(), &a))
	return a
}

func ptr(v float64) *float64 { return &v }

func timePtr(ts time.Time) *time.Time { return &ts }

func TestStoreSchemaCreated(t *testing.T) {
	t.Parallel()

	s, path := newTestStore(t)
	require.NoError(t, s.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('accounts','trades','import_logs')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	require.NoError(t, rows.Err())

	assert.True(t, found["accounts"])
	assert.True(t, found["trades"])
	assert.True(t, found["import_logs"])
}

func TestCreateAccountSeedsBalanceAndID(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 10000)

	assert.NotEmpty(t, a.ID)

	got, err := s.GetAccount(context.Background(), a.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10000, got.InitialBalance, 1e-9)
	assert.InDelta(t, 10000, got.CurrentBalance, 1e-9)
	assert.True(t, got.IsActive)
}

func TestGetAccountNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	_, err := s.GetAccount(context.Background(), "missing")
	assert.Error(t, err)
}

func TestCreateAndGetTrade(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 5000)

	entry := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)
	exit := time.Date(2024, 4, 10, 15, 30, 0, 0, time.UTC)

	tr := trade.Trade{
		AccountID:    a.ID,
		TicketID:     "100234",
		CurrencyPair: "EURUSD",
		Direction:    trade.Buy,
		EntryTime:    entry,
		EntryPrice:   1.0850,
		PositionSize: 1.5,
		StopLoss:     ptr(1.0800),
		TakeProfit:   ptr(1.0950),
		ExitTime:     timePtr(exit),
		ExitPrice:    ptr(1.0875),
		ProfitLoss:   ptr(375.0),
	}
	require.NoError(t, s.CreateTrade(context.Background(), &tr))
	assert.NotEmpty(t, tr.ID)

	// Status was inferred from exit evidence at creation.
	assert.Equal(t, trade.Closed, tr.Status)

	got, err := s.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)

	assert.Equal(t, tr.TicketID, got.TicketID)
	assert.Equal(t, trade.Buy, got.Direction)
	assert.Equal(t, trade.Closed, got.Status)
	assert.InDelta(t, 1.0850, got.EntryPrice, 1e-9)
	require.NotNil(t, got.StopLoss)
	assert.InDelta(t, 1.0800, *got.StopLoss, 1e-9)
	require.NotNil(t, got.ProfitLoss)
	assert.InDelta(t, 375.0, *got.ProfitLoss, 1e-9)
	require.NotNil(t, got.ExitTime)
	assert.True(t, got.ExitTime.Equal(exit))
	assert.Nil(t, got.Pips)
}

func TestCreateTradeOpenWhenNoExitData(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 5000)

	tr := trade.Trade{
		AccountID:    a.ID,
		CurrencyPair: "GBPUSD",
		Direction:    trade.Sell,
		EntryTime:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		EntryPrice:   1.2500,
		PositionSize: 0.5,
	}
	require.NoError(t, s.CreateTrade(context.Background(), &tr))
	assert.Equal(t, trade.Open, tr.Status)
}

func TestUpdateTrade(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 5000)

	tr := trade.Trade{
		AccountID:    a.ID,
		CurrencyPair: "EURUSD",
		Direction:    trade.Buy,
		EntryTime:    time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC),
		EntryPrice:   1.0900,
		PositionSize: 1,
	}
	require.NoError(t, s.CreateTrade(context.Background(), &tr))

	exit := time.Date(2024, 5, 1, 14, 0, 0, 0, time.UTC)
	tr.ExitTime = timePtr(exit)
	tr.ExitPrice = ptr(1.0950)
	tr.ProfitLoss = ptr(50.0)
	tr.Status = trade.InferStatus(&tr)
	require.NoError(t, s.UpdateTrade(context.Background(), &tr))

	got, err := s.GetTrade(context.Background(), tr.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.Closed, got.Status)
	require.NotNil(t, got.ProfitLoss)
	assert.InDelta(t, 50.0, *got.ProfitLoss, 1e-9)
}

func TestUpdateTradeNotFound(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)

	tr := trade.Trade{ID: "missing", CurrencyPair: "EURUSD", Direction: trade.Buy, EntryTime: time.Now()}
	assert.Error(t, s.UpdateTrade(context.Background(), &tr))
}

func TestDeleteTrade(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 5000)

	tr := trade.Trade{
		AccountID:    a.ID,
		CurrencyPair: "EURUSD",
		Direction:    trade.Buy,
		EntryTime:    time.Now().UTC(),
		EntryPrice:   1.1,
		PositionSize: 1,
	}
	require.NoError(t, s.CreateTrade(context.Background(), &tr))
	require.NoError(t, s.DeleteTrade(context.Background(), tr.ID))

	_, err := s.GetTrade(context.Background(), tr.ID)
	assert.Error(t, err)

	assert.Error(t, s.DeleteTrade(context.Background(), tr.ID))
}

func TestImportLogLifecycle(t *testing.T) {
	t.Parallel()

	s, _ := newTestStore(t)
	a := newTestAccount(t, s, 1000)

	l := ImportLog{
		AccountID: a.ID,
		FileName:  "statement.csv",
		TotalRows: 10,
	}
	require.NoError(t, s.CreateImportLog(context.Background(), &l))
	assert.Equal(t, ImportProcessing, l.Status)

	l.Status = ImportCompleted
	l.ImportedRows = 8
	l.SkippedRows = 2
	require.NoError(t, s.FinishImportLog(context.Background(), &l))
	assert.NotNil(t, l.CompletedAt)
}
