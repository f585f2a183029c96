// Package csvfile implements the ledger store on a local spreadsheet-like
// CSV file with the canonical column set.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/store"
)

type Store struct {
	path string
}

var _ store.Store = (*Store)(nil)

func New(path string) *Store {
	return &Store{path: path}
}

// Load reads the full table. A missing file is an empty ledger, matching
// first-run behavior; any other failure wraps ErrStoreUnavailable.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		slog.InfoContext(ctx, "Ledger file not found, starting with empty ledger", "path", s.path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", core.ErrStoreUnavailable, s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrStoreUnavailable, s.path, err)
	}

	var rows []core.Transaction
	for i, rec := range records {
		if i == 0 && isHeader(rec) {
			continue
		}
		if len(rec) < len(store.Columns) {
			return nil, fmt.Errorf("%w: %s row %d has %d columns, want %d",
				core.ErrStoreUnavailable, s.path, i+1, len(rec), len(store.Columns))
		}
		date, err := core.ParseDate(rec[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", core.ErrStoreUnavailable, s.path, i+1, err)
		}
		rows = append(rows, core.Transaction{
			ID:       rec[0],
			Date:     date,
			Category: rec[2],
			Subhead:  rec[3],
			Debit:    core.ParseAmount(rec[4]),
			Credit:   core.ParseAmount(rec[5]),
			User:     rec[6],
			Balance:  core.ParseSignedAmount(rec[7]),
		})
	}
	return rows, nil
}

// Save rewrites the whole table. The write goes to a temp file first and is
// renamed into place so a crash never leaves a half-written ledger.
func (s *Store) Save(ctx context.Context, rows []core.Transaction) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("%w: create %s: %v", core.ErrStoreUnavailable, dir, err)
		}
	}

	tmp, err := os.CreateTemp(dir, ".ledger-*.csv")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", core.ErrStoreUnavailable, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(store.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range rows {
		rec := []string{
			t.ID,
			t.Date.String(),
			t.Category,
			t.Subhead,
			t.Debit.String(),
			t.Credit.String(),
			t.User,
			t.Balance.String(),
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write row %s: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", core.ErrStoreUnavailable, s.path, err)
	}
	slog.DebugContext(ctx, "Ledger saved", "path", s.path, "rows", len(rows))
	return nil
}

func isHeader(rec []string) bool {
	return len(rec) > 0 && rec[0] == store.Columns[0]
}
