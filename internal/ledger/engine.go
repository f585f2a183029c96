// Package ledger implements the transaction ledger engine: identifier
// assignment, add/edit/delete/undo mutations, and snapshot balance
// recomputation. Every operation is one full load-mutate-save cycle
// against the injected store; the later save wins if callers race.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/imanibom/churchAccounts/internal/amqp"
	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/store"
)

// EventPublisher receives a notification after each applied mutation.
// A nil publisher disables events.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, ev *amqp.LedgerEvent) error
}

// Input is one operator-entered transaction. Debit and credit arrive as raw
// strings and normalize leniently: blank or unparseable amounts become zero
// rather than failing. The date must be YYYY-MM-DD.
type Input struct {
	Date     string
	Category string
	Subhead  string
	Debit    string
	Credit   string
	User     string
}

type Engine struct {
	store      store.Store
	categories core.CategorySet
	events     EventPublisher
	multiUser  bool
	logger     *slog.Logger
}

// New builds an engine over the given store. With multiUser enabled, id
// uniqueness, id generation and balance stamping all apply per user rather
// than ledger-wide.
func New(st store.Store, categories core.CategorySet, events EventPublisher, multiUser bool, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:      st,
		categories: categories,
		events:     events,
		multiUser:  multiUser,
		logger:     logger,
	}
}

// Add appends a new transaction with a freshly generated identifier and
// returns the stored row, balance already stamped.
func (e *Engine) Add(ctx context.Context, in Input) (core.Transaction, error) {
	return e.AddOrEdit(ctx, "", in)
}

// AddOrEdit overwrites the row matching id within the input's scope, or
// appends a new row when id is blank or matches nothing. The matched row
// keeps its id and user; only date, category, subhead and amounts change.
func (e *Engine) AddOrEdit(ctx context.Context, id string, in Input) (core.Transaction, error) {
	tx, err := e.parse(in)
	if err != nil {
		return core.Transaction{}, err
	}

	rows, err := e.store.Load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	op := amqp.OpAdd
	id = strings.TrimSpace(id)
	idx := -1
	if id != "" {
		idx = e.find(rows, id, in.User)
	}
	if idx >= 0 {
		tx.ID = rows[idx].ID
		tx.User = rows[idx].User
		rows[idx] = tx
		op = amqp.OpEdit
	} else {
		nextID, err := core.NextID(e.scopeIDs(rows, in.User))
		if err != nil {
			return core.Transaction{}, err
		}
		tx.ID = nextID
		rows = append(rows, tx)
		idx = len(rows) - 1
	}

	e.restamp(rows)
	if err := e.store.Save(ctx, rows); err != nil {
		return core.Transaction{}, err
	}
	saved := rows[idx]
	e.logger.InfoContext(ctx, "Transaction saved",
		"op", op, "id", saved.ID, "category", saved.Category,
		"debit", saved.Debit.String(), "credit", saved.Credit.String())
	e.publish(ctx, op, saved.ID, saved.User, rows)
	return saved, nil
}

// Delete removes the row matching id (and user, when scoped). A missing id
// is a silent no-op: the ledger is left untouched and nothing is saved.
func (e *Engine) Delete(ctx context.Context, id, user string) error {
	rows, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	idx := e.find(rows, id, user)
	if idx < 0 {
		e.logger.InfoContext(ctx, "Delete target not found, ledger unchanged", "id", id)
		return nil
	}
	removed := rows[idx]
	rows = append(rows[:idx], rows[idx+1:]...)
	e.restamp(rows)
	if err := e.store.Save(ctx, rows); err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "Transaction deleted", "id", removed.ID, "user", removed.User)
	e.publish(ctx, amqp.OpDelete, removed.ID, removed.User, rows)
	return nil
}

// UndoLast removes the single most recently appended row by position,
// regardless of which user it belongs to. It is a blunt global undo, not an
// undo stack. Undo on an empty ledger is a no-op.
func (e *Engine) UndoLast(ctx context.Context) error {
	rows, err := e.store.Load(ctx)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		e.logger.InfoContext(ctx, "Undo on empty ledger, nothing to do")
		return nil
	}
	removed := rows[len(rows)-1]
	rows = rows[:len(rows)-1]
	e.restamp(rows)
	if err := e.store.Save(ctx, rows); err != nil {
		return err
	}
	e.logger.InfoContext(ctx, "Last transaction undone", "id", removed.ID, "user", removed.User)
	e.publish(ctx, amqp.OpUndo, removed.ID, removed.User, rows)
	return nil
}

// List returns all rows in insertion order.
func (e *Engine) List(ctx context.Context) ([]core.Transaction, error) {
	return e.store.Load(ctx)
}

// ListUser returns the rows belonging to one user, in insertion order.
func (e *Engine) ListUser(ctx context.Context, user string) ([]core.Transaction, error) {
	rows, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Transaction
	for _, t := range rows {
		if t.User == user {
			out = append(out, t)
		}
	}
	return out, nil
}

// Subheads returns the distinct subhead labels seen in the ledger, in first
// appearance order. Subheads are user-extensible, so the set is derived
// from data rather than configuration.
func (e *Engine) Subheads(ctx context.Context) ([]string, error) {
	rows, err := e.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	var out []string
	for _, t := range rows {
		s := strings.TrimSpace(t.Subhead)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out, nil
}

// Categories returns the configured category set.
func (e *Engine) Categories() core.CategorySet {
	return e.categories
}

func (e *Engine) parse(in Input) (core.Transaction, error) {
	date, err := core.ParseDate(strings.TrimSpace(in.Date))
	if err != nil {
		return core.Transaction{}, err
	}
	category := strings.TrimSpace(in.Category)
	if !e.categories.Contains(category) {
		return core.Transaction{}, fmt.Errorf("%w: %q", core.ErrInvalidCategory, category)
	}
	return core.Transaction{
		Date:     date,
		Category: category,
		Subhead:  strings.TrimSpace(in.Subhead),
		Debit:    core.ParseAmount(in.Debit),
		Credit:   core.ParseAmount(in.Credit),
		User:     strings.TrimSpace(in.User),
	}, nil
}

// find locates a row by id. In multi-user mode the id only matches within
// the given user's rows; one user's id must never match another's.
func (e *Engine) find(rows []core.Transaction, id, user string) int {
	for i, t := range rows {
		if t.ID != id {
			continue
		}
		if e.multiUser && t.User != strings.TrimSpace(user) {
			continue
		}
		return i
	}
	return -1
}

// scopeIDs returns the existing ids of the scope in insertion order, which
// is what NextID derives the successor from.
func (e *Engine) scopeIDs(rows []core.Transaction, user string) []string {
	user = strings.TrimSpace(user)
	ids := make([]string, 0, len(rows))
	for _, t := range rows {
		if e.multiUser && t.User != user {
			continue
		}
		ids = append(ids, t.ID)
	}
	return ids
}

// restamp writes the scope-wide net total (credit minus debit) into the
// balance field of every row of each scope. The balance is a snapshot
// value, identical on every row of a scope, not a running total.
func (e *Engine) restamp(rows []core.Transaction) {
	if !e.multiUser {
		var net int64
		for _, t := range rows {
			net += t.Credit.Cents - t.Debit.Cents
		}
		for i := range rows {
			rows[i].Balance = core.Money{Cents: net}
		}
		return
	}
	totals := map[string]int64{}
	for _, t := range rows {
		totals[t.User] += t.Credit.Cents - t.Debit.Cents
	}
	for i := range rows {
		rows[i].Balance = core.Money{Cents: totals[rows[i].User]}
	}
}

func (e *Engine) publish(ctx context.Context, op, id, user string, rows []core.Transaction) {
	if e.events == nil {
		return
	}
	var balance int64
	for _, t := range rows {
		if !e.multiUser || t.User == user {
			balance = t.Balance.Cents
			break
		}
	}
	ev := amqp.NewLedgerEvent(op, id, user, len(rows), balance)
	if err := e.events.PublishLedgerEvent(ctx, ev); err != nil {
		// Events are best-effort; the mutation already committed.
		e.logger.WarnContext(ctx, "Failed to publish ledger event", "op", op, "id", id, "error", err)
	}
}
