package csvfile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/imanibom/churchAccounts/internal/core"
)

func sampleRows() []core.Transaction {
	return []core.Transaction{
		{
			ID:       "a0001",
			Date:     core.NewDate(2025, 1, 5),
			Category: "Weekly Collection",
			Subhead:  "Sunday Service",
			Credit:   core.Money{Cents: 125000},
			Balance:  core.Money{Cents: 75000},
		},
		{
			ID:       "a0002",
			Date:     core.NewDate(2025, 1, 7),
			Category: "Expenditure",
			Subhead:  "Utilities",
			Debit:    core.Money{Cents: 50000},
			User:     "treasurer",
			Balance:  core.Money{Cents: 75000},
		},
	}
}

func TestLoadMissingFileIsEmptyLedger(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "missing.csv"))
	rows, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(rows))
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ledger.csv"))
	ctx := context.Background()

	want := sampleRows()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("row count %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	// Saving a freshly loaded ledger and reloading must be idempotent.
	if err := s.Save(ctx, got); err != nil {
		t.Fatalf("second save: %v", err)
	}
	again, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	for i := range got {
		if again[i] != got[i] {
			t.Fatalf("round trip changed row %d: %+v != %+v", i, again[i], got[i])
		}
	}
}

func TestSaveEmptyLedger(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "ledger.csv"))
	ctx := context.Background()
	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	rows, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected 0 rows, got %d", len(rows))
	}
}
