// Package store defines the ledger store port. A store persists the full
// ordered table of transactions; there are no partial writes. Every engine
// operation performs a full load before mutating and a full save after.
package store

import (
	"context"

	"github.com/imanibom/churchAccounts/internal/core"
)

// Store is the capability the ledger engine depends on. Implementations
// must preserve row order across Save/Load round trips. A missing backing
// store on first load yields an empty ledger, not an error.
type Store interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, rows []core.Transaction) error
}

// Columns is the canonical column set shared by the spreadsheet-shaped
// backends (CSV file, Google Sheets).
var Columns = []string{"ID", "Date", "Category", "Subhead", "Debit", "Credit", "User", "Balance"}
