// Package audit appends ledger mutation events to a durable trail file.
// The audit worker consumes events from the broker and records one JSON
// line per applied mutation, so the history of changes survives even
// though the ledger itself only stores current state.
package audit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/imanibom/churchAccounts/internal/amqp"
)

// Trail is an append-only JSON-lines file of ledger events.
type Trail struct {
	mu   sync.Mutex
	path string
}

func NewTrail(path string) (*Trail, error) {
	if path == "" {
		return nil, fmt.Errorf("audit trail path cannot be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create audit trail directory: %w", err)
		}
	}
	return &Trail{path: path}, nil
}

// Record appends one event as a single JSON line. The file is opened per
// write so a crash never leaves an open handle on a partial line.
func (t *Trail) Record(ev *amqp.LedgerEvent) error {
	line, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal audit entry: %w", err)
	}
	line = append(line, '\n')

	t.mu.Lock()
	defer t.mu.Unlock()

	f, err := os.OpenFile(t.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit trail: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// Entries reads the whole trail back, oldest first. A missing file is an
// empty trail.
func (t *Trail) Entries() ([]amqp.LedgerEvent, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read audit trail: %w", err)
	}

	var out []amqp.LedgerEvent
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var ev amqp.LedgerEvent
		if err := dec.Decode(&ev); err != nil {
			return nil, fmt.Errorf("decode audit entry: %w", err)
		}
		out = append(out, ev)
	}
	return out, nil
}
