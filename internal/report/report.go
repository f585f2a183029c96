// Package report builds grouped aggregates and summary totals over a set
// of ledger rows.
package report

import (
	"sort"

	"github.com/imanibom/churchAccounts/internal/core"
)

// Criteria filters rows before aggregation. Start and end are inclusive on
// both ends; a zero date leaves that side unbounded. Category and Subhead
// are exact-match filters when non-empty.
type Criteria struct {
	Start    core.Date
	End      core.Date
	Category string
	Subhead  string
}

// Row is one aggregate per distinct (category, subhead) pair.
type Row struct {
	Category string     `json:"category"`
	Subhead  string     `json:"subhead"`
	Debit    core.Money `json:"debit"`
	Credit   core.Money `json:"credit"`
}

// Summary holds the ledger-level totals that feed the income vs
// expenditure views.
type Summary struct {
	Income      core.Money `json:"income"`
	Expenditure core.Money `json:"expenditure"`
	Net         core.Money `json:"net"`
}

// Build filters rows by the criteria, groups them by (category, subhead)
// and sums debit and credit per group. Output is sorted by category then
// subhead so repeated runs over the same ledger produce identical reports.
func Build(rows []core.Transaction, c Criteria) []Row {
	type key struct{ category, subhead string }
	groups := map[key]*Row{}
	for _, t := range rows {
		if !t.Date.Between(c.Start, c.End) {
			continue
		}
		if c.Category != "" && t.Category != c.Category {
			continue
		}
		if c.Subhead != "" && t.Subhead != c.Subhead {
			continue
		}
		k := key{t.Category, t.Subhead}
		g, ok := groups[k]
		if !ok {
			g = &Row{Category: t.Category, Subhead: t.Subhead}
			groups[k] = g
		}
		g.Debit.Cents += t.Debit.Cents
		g.Credit.Cents += t.Credit.Cents
	}

	out := make([]Row, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Subhead < out[j].Subhead
	})
	return out
}

// Summarize computes the totals over all given rows: income is the credit
// sum over non-expenditure categories, expenditure is the debit sum over
// the expenditure category, and net is credit minus debit ledger-wide.
// A row carrying both amounts contributes each side to its own total.
func Summarize(rows []core.Transaction, cats core.CategorySet) Summary {
	var s Summary
	for _, t := range rows {
		if cats.IsExpenditure(t.Category) {
			s.Expenditure.Cents += t.Debit.Cents
		} else {
			s.Income.Cents += t.Credit.Cents
		}
		s.Net.Cents += t.Credit.Cents - t.Debit.Cents
	}
	return s
}
