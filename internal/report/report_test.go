package report

import (
	"testing"

	"github.com/imanibom/churchAccounts/internal/core"
)

func tx(id, date, category, subhead string, debit, credit int64) core.Transaction {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Transaction{
		ID:       id,
		Date:     d,
		Category: category,
		Subhead:  subhead,
		Debit:    core.Money{Cents: debit},
		Credit:   core.Money{Cents: credit},
	}
}

func TestBuildSingleDaySingleRow(t *testing.T) {
	rows := []core.Transaction{
		tx("a0001", "2025-03-09", "Expenditure", "Utilities", 50000, 0),
		tx("a0002", "2025-03-10", "Fundraising", "Raffle", 0, 10000),
	}
	day := core.NewDate(2025, 3, 9)
	got := Build(rows, Criteria{Start: day, End: day})
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	want := Row{Category: "Expenditure", Subhead: "Utilities", Debit: core.Money{Cents: 50000}}
	if got[0] != want {
		t.Fatalf("got %+v, want %+v", got[0], want)
	}
}

func TestBuildInclusiveBounds(t *testing.T) {
	rows := []core.Transaction{
		tx("a0001", "2025-01-01", "Fundraising", "Raffle", 0, 100),
		tx("a0002", "2025-01-15", "Fundraising", "Raffle", 0, 200),
		tx("a0003", "2025-01-31", "Fundraising", "Raffle", 0, 400),
		tx("a0004", "2025-02-01", "Fundraising", "Raffle", 0, 800),
	}
	got := Build(rows, Criteria{Start: core.NewDate(2025, 1, 1), End: core.NewDate(2025, 1, 31)})
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Credit.Cents != 700 {
		t.Fatalf("credit sum = %d, want 700 (both boundary days included, February excluded)", got[0].Credit.Cents)
	}
}

func TestBuildGroupsAndSorts(t *testing.T) {
	rows := []core.Transaction{
		tx("a0001", "2025-01-05", "Weekly Collection", "Sunday", 0, 1000),
		tx("a0002", "2025-01-06", "Expenditure", "Utilities", 300, 0),
		tx("a0003", "2025-01-12", "Weekly Collection", "Sunday", 0, 1200),
		tx("a0004", "2025-01-13", "Expenditure", "Repairs", 500, 0),
	}
	got := Build(rows, Criteria{})
	want := []Row{
		{Category: "Expenditure", Subhead: "Repairs", Debit: core.Money{Cents: 500}},
		{Category: "Expenditure", Subhead: "Utilities", Debit: core.Money{Cents: 300}},
		{Category: "Weekly Collection", Subhead: "Sunday", Credit: core.Money{Cents: 2200}},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d rows, want %d: %+v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildCategoryAndSubheadFilters(t *testing.T) {
	rows := []core.Transaction{
		tx("a0001", "2025-01-05", "Expenditure", "Utilities", 100, 0),
		tx("a0002", "2025-01-05", "Expenditure", "Repairs", 200, 0),
		tx("a0003", "2025-01-05", "Fundraising", "Utilities", 0, 300),
	}
	got := Build(rows, Criteria{Category: "Expenditure", Subhead: "Utilities"})
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	if got[0].Debit.Cents != 100 {
		t.Fatalf("debit = %d, want 100", got[0].Debit.Cents)
	}
}

func TestSummarize(t *testing.T) {
	cats := core.NewCategorySet(core.DefaultCategories, core.DefaultExpenditureCategory)
	rows := []core.Transaction{
		tx("a0001", "2025-01-05", "Weekly Collection", "Sunday", 0, 1000),
		tx("a0002", "2025-01-06", "Expenditure", "Utilities", 300, 0),
		// Expenditure row with a credit: the credit counts toward net but
		// not toward income, since income excludes the expenditure category.
		tx("a0003", "2025-01-07", "Expenditure", "Refund", 0, 50),
		// Non-expenditure row with a debit: the debit counts toward net but
		// not toward expenditure.
		tx("a0004", "2025-01-08", "Fundraising", "Float", 20, 0),
	}
	got := Summarize(rows, cats)
	if got.Income.Cents != 1000 {
		t.Fatalf("income = %d, want 1000", got.Income.Cents)
	}
	if got.Expenditure.Cents != 300 {
		t.Fatalf("expenditure = %d, want 300", got.Expenditure.Cents)
	}
	if got.Net.Cents != 1000-300+50-20 {
		t.Fatalf("net = %d, want %d", got.Net.Cents, 1000-300+50-20)
	}
}

func TestBuildEmptyResult(t *testing.T) {
	got := Build(nil, Criteria{})
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %d", len(got))
	}
}
