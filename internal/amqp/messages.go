package amqp

import (
	"encoding/json"
	"time"
)

// Ledger mutation operations carried on the wire.
const (
	OpAdd    = "add"
	OpEdit   = "edit"
	OpDelete = "delete"
	OpUndo   = "undo"
)

// LedgerEvent describes one applied mutation. Consumers such as the audit
// worker get enough context to build a trail without reloading the ledger.
type LedgerEvent struct {
	Op           string    `json:"op"`
	ID           string    `json:"id,omitempty"`
	User         string    `json:"user,omitempty"`
	Rows         int       `json:"rows"`
	BalanceCents int64     `json:"balance_cents"`
	Timestamp    time.Time `json:"timestamp"`
}

func NewLedgerEvent(op, id, user string, rows int, balanceCents int64) *LedgerEvent {
	return &LedgerEvent{
		Op:           op,
		ID:           id,
		User:         user,
		Rows:         rows,
		BalanceCents: balanceCents,
		Timestamp:    time.Now(),
	}
}

func (e *LedgerEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func LedgerEventFromJSON(data []byte) (*LedgerEvent, error) {
	var ev LedgerEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
