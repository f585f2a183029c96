package cli

import (
	"strings"
	"testing"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/report"
)

func TestTransactionsMarkdown(t *testing.T) {
	rows := []core.Transaction{
		{
			ID:       "a0001",
			Date:     core.NewDate(2025, 3, 9),
			Category: "Expenditure",
			Subhead:  "Utilities",
			Debit:    core.Money{Cents: 50000},
			Balance:  core.Money{Cents: -50000},
		},
	}
	md := transactionsMarkdown(rows)
	for _, want := range []string{"a0001", "2025-03-09", "Utilities", "500.00", "-500.00"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestTransactionsMarkdownEmpty(t *testing.T) {
	if md := transactionsMarkdown(nil); !strings.Contains(md, "No transactions") {
		t.Errorf("unexpected empty-ledger output: %q", md)
	}
}

func TestSummaryMarkdown(t *testing.T) {
	md := summaryMarkdown(report.Summary{
		Income:      core.Money{Cents: 100000},
		Expenditure: core.Money{Cents: 30000},
		Net:         core.Money{Cents: 70000},
	})
	for _, want := range []string{"1000.00", "300.00", "700.00"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
