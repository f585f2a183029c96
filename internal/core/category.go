package core

import "strings"

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []string{
	"Weekly Collection",
	"Freewill Donation",
	"Fundraising",
	"Expenditure",
}

// DefaultExpenditureCategory is the category whose debits count as
// expenditure in summary totals.
const DefaultExpenditureCategory = "Expenditure"

// CategorySet is the configured set of top-level categories. Subheads under
// a category stay free text and are not constrained here.
type CategorySet struct {
	names       []string
	expenditure string
}

// NewCategorySet builds a set from configuration. Blank entries are dropped
// and duplicates keep their first position.
func NewCategorySet(names []string, expenditure string) CategorySet {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return CategorySet{names: out, expenditure: strings.TrimSpace(expenditure)}
}

func (cs CategorySet) Contains(name string) bool {
	for _, n := range cs.names {
		if n == name {
			return true
		}
	}
	return false
}

// Names returns the configured categories in order.
func (cs CategorySet) Names() []string {
	return append([]string(nil), cs.names...)
}

// IsExpenditure reports whether the category counts toward expenditure
// totals rather than income.
func (cs CategorySet) IsExpenditure(name string) bool {
	return cs.expenditure != "" && name == cs.expenditure
}
