// Package backend selects and constructs the ledger store named by
// configuration, plus the optional AMQP event publisher. The engine only
// ever sees the store capability, never a concrete backend.
package backend

import (
	"github.com/imanibom/churchAccounts/internal/amqp"
	"github.com/imanibom/churchAccounts/internal/store"
)

// Type names a store backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	SheetsBackend Type = "sheets"
)

func (t Type) String() string { return string(t) }

func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, SheetsBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources on shutdown.
type CleanupFunc func() error

// Result carries the constructed store, the optional event publisher and a
// cleanup function (nil-safe fields).
type Result struct {
	Store   store.Store
	Events  *amqp.Client
	Cleanup CleanupFunc
}
