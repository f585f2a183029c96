// Package sqlite implements the ledger store on an embedded SQLite
// database. The whole-table rewrite contract is kept: Save runs one
// transaction that clears the table and reinserts every row in order.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/store"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

var _ store.Store = (*Store)(nil)

func New(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %v", core.ErrStoreUnavailable, err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load returns all rows in insertion order. The seq column is assigned on
// insert and survives full rewrites because Save reinserts in slice order.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, tx_date, category, subhead, debit_cents, credit_cents, owner, balance_cents
		FROM transactions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("%w: select transactions: %v", core.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t       core.Transaction
			dateStr string
			debit   int64
			credit  int64
			balance int64
		)
		if err := rows.Scan(&t.ID, &dateStr, &t.Category, &t.Subhead, &debit, &credit, &t.User, &balance); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: stored date %q: %v", core.ErrStoreUnavailable, dateStr, err)
		}
		t.Date = date
		t.Debit = core.Money{Cents: debit}
		t.Credit = core.Money{Cents: credit}
		t.Balance = core.Money{Cents: balance}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate transactions: %v", core.ErrStoreUnavailable, err)
	}
	return out, nil
}

// Save replaces the full table atomically.
func (s *Store) Save(ctx context.Context, txs []core.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin transaction: %v", core.ErrStoreUnavailable, err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, tx_date, category, subhead, debit_cents, credit_cents, owner, balance_cents)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range txs {
		if _, err := stmt.ExecContext(ctx,
			t.ID, t.Date.String(), t.Category, t.Subhead,
			t.Debit.Cents, t.Credit.Cents, t.User, t.Balance.Cents,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}
	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", core.ErrStoreUnavailable, err)
	}
	return nil
}
