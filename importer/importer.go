// importer/importer.go

// Package importer loads broker statement exports (MT4/MT5-style CSV, plain
// or zipped) into the journal: header mapping, duplicate detection, derived
// metrics per row, one balance reconciliation per affected account.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/fxjournal/journal"
	"github.com/rustyeddy/fxjournal/trade"
)

// priceEpsilon bounds float drift when matching an incoming row against a
// stored trade.
const priceEpsilon = 1e-5

// Importer writes statement rows into the journal store.
type Importer struct {
	store *journal.Store
	log   *zap.Logger
}

func New(store *journal.Store, log *zap.Logger) *Importer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Importer{store: store, log: log}
}

// Result summarizes one import batch.
type Result struct {
	LogID        string
	BrokerFormat string
	Total        int
	Imported     int
	Duplicates   int
	Skipped      int // non-trade rows (balance lines, unparseable)
	NewBalance   float64
}

// ImportFile imports a statement from disk. A .zip file is unpacked and every
// .csv inside is imported into the same account.
func (im *Importer) ImportFile(ctx context.Context, accountID, path string) (Result, error) {
	if strings.EqualFold(filepath.Ext(path), ".zip") {
		return im.importZip(ctx, accountID, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("open statement %q: %w", path, err)
	}
	defer f.Close()

	return im.ImportCSV(ctx, accountID, filepath.Base(path), f)
}

// ImportCSV imports one CSV statement. The batch is logged in import_logs
// regardless of outcome; duplicates are detected before insert, first by
// ticket id, then by entry/exit field matching.
func (im *Importer) ImportCSV(ctx context.Context, accountID, fileName string, r io.Reader) (Result, error) {
	// The account must exist before anything is written.
	if _, err := im.store.GetAccount(ctx, accountID); err != nil {
		return Result{}, err
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return Result{}, fmt.Errorf("parse statement %q: %w", fileName, err)
	}
	if len(records) < 2 {
		return Result{}, fmt.Errorf("statement %q has no data rows", fileName)
	}

	h := newHeader(records[0])
	format := "Unknown"
	if h.hasTicketColumn() {
		format = "MT4/MT5"
	}

	rows := records[1:]
	log := journal.ImportLog{
		AccountID:    accountID,
		FileName:     fileName,
		BrokerFormat: format,
		TotalRows:    len(rows),
	}
	if err := im.store.CreateImportLog(ctx, &log); err != nil {
		return Result{}, err
	}

	res, err := im.importRows(ctx, accountID, h, rows)
	res.LogID = log.ID
	res.BrokerFormat = format

	log.ImportedRows = res.Imported
	log.SkippedRows = res.Skipped + res.Duplicates
	log.Status = journal.ImportCompleted
	if err != nil {
		log.Status = journal.ImportFailed
		log.ErrorRows = res.Total - res.Imported - res.Skipped - res.Duplicates
		log.ErrorDetails = err.Error()
	}
	if finishErr := im.store.FinishImportLog(ctx, &log); finishErr != nil && err == nil {
		err = finishErr
	}
	if err != nil {
		return res, err
	}

	im.log.Info("statement imported",
		zap.String("file", fileName),
		zap.String("account_id", accountID),
		zap.Int("imported", res.Imported),
		zap.Int("duplicates", res.Duplicates),
		zap.Int("skipped", res.Skipped))
	return res, nil
}

func (im *Importer) importRows(ctx context.Context, accountID string, h header, rows [][]string) (Result, error) {
	res := Result{Total: len(rows)}

	existing, err := im.store.ListTrades(ctx, accountID)
	if err != nil {
		return res, err
	}

	now := time.Now().UTC()
	for _, rec := range rows {
		t, ok := mapRow(h, rec, accountID, now)
		if !ok {
			res.Skipped++
			continue
		}
		if isDuplicate(&t, existing) {
			res.Duplicates++
			continue
		}

		m := trade.ComputeMetrics(&t)
		t.Pips = m.Pips
		t.RiskRewardRatio = m.RiskRewardRatio
		t.RMultiple = m.RMultiple
		t.RiskAmount = m.RiskAmount

		if err := im.store.CreateTrade(ctx, &t); err != nil {
			return res, err
		}
		existing = append(existing, t)
		res.Imported++
	}

	// One reconciliation per batch; the sum query sees every inserted row.
	if res.Imported > 0 {
		balance, _, err := im.store.ReconcileBalance(ctx, accountID)
		if err != nil {
			return res, err
		}
		res.NewBalance = balance
	}
	return res, nil
}

// isDuplicate matches an incoming row against stored trades: ticket id wins
// when both sides have one, otherwise entry time + pair + entry price, with
// exit fields compared when both sides closed.
func isDuplicate(t *trade.Trade, existing []trade.Trade) bool {
	for i := range existing {
		e := &existing[i]
		if t.TicketID != "" && e.TicketID != "" {
			if t.TicketID == e.TicketID {
				return true
			}
			continue
		}

		if !e.EntryTime.Equal(t.EntryTime) ||
			e.CurrencyPair != t.CurrencyPair ||
			math.Abs(e.EntryPrice-t.EntryPrice) > priceEpsilon {
			continue
		}

		// Same entry. If both have exit data, it must match too; a row with
		// exit data does not duplicate a stored open trade.
		if t.ExitTime != nil && e.ExitTime != nil {
			if e.ExitTime.Equal(*t.ExitTime) &&
				math.Abs(deref(e.ExitPrice)-deref(t.ExitPrice)) <= priceEpsilon {
				return true
			}
			continue
		}
		if (t.ExitTime != nil) != (e.ExitTime != nil) {
			continue
		}
		return true
	}
	return false
}

func (im *Importer) importZip(ctx context.Context, accountID, path string) (Result, error) {
	dir, err := os.MkdirTemp("", "fxjournal-import-*")
	if err != nil {
		return Result{}, fmt.Errorf("unpack statement %q: %w", path, err)
	}
	defer os.RemoveAll(dir)

	if err := extractZip(path, dir); err != nil {
		return Result{}, fmt.Errorf("unpack statement %q: %w", path, err)
	}

	var total Result
	found := false
	err = filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || !strings.EqualFold(filepath.Ext(p), ".csv") {
			return err
		}
		found = true

		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("open extracted %q: %w", p, err)
		}
		defer f.Close()

		res, err := im.ImportCSV(ctx, accountID, filepath.Base(path)+"/"+filepath.Base(p), f)
		total.Total += res.Total
		total.Imported += res.Imported
		total.Duplicates += res.Duplicates
		total.Skipped += res.Skipped
		if res.NewBalance != 0 {
			total.NewBalance = res.NewBalance
		}
		total.LogID = res.LogID
		total.BrokerFormat = res.BrokerFormat
		return err
	})
	if err != nil {
		return total, err
	}
	if !found {
		return total, fmt.Errorf("statement %q contains no CSV files", path)
	}
	return total, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
