package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/report"
)

// printMarkdown renders markdown for the terminal, falling back to the raw
// text when rendering fails (no TTY, unknown terminal).
func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

func transactionsMarkdown(rows []core.Transaction) string {
	if len(rows) == 0 {
		return "No transactions recorded.\n"
	}
	var b strings.Builder
	b.WriteString("| ID | Date | Category | Subhead | Debit | Credit | Balance |\n")
	b.WriteString("|---|---|---|---|---:|---:|---:|\n")
	for _, t := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			t.ID, t.Date, t.Category, t.Subhead,
			t.Debit.String(), t.Credit.String(), t.Balance.String())
	}
	return b.String()
}

func reportMarkdown(rows []report.Row) string {
	if len(rows) == 0 {
		return "No transactions match the report criteria.\n"
	}
	var b strings.Builder
	b.WriteString("| Category | Subhead | Debit | Credit |\n")
	b.WriteString("|---|---|---:|---:|\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			r.Category, r.Subhead, r.Debit.String(), r.Credit.String())
	}
	return b.String()
}

func summaryMarkdown(s report.Summary) string {
	var b strings.Builder
	b.WriteString("| | Amount |\n")
	b.WriteString("|---|---:|\n")
	fmt.Fprintf(&b, "| Income | %s |\n", s.Income.String())
	fmt.Fprintf(&b, "| Expenditure | %s |\n", s.Expenditure.String())
	fmt.Fprintf(&b, "| Net balance | %s |\n", s.Net.String())
	return b.String()
}
