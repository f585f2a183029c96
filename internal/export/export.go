// Package export serializes report aggregates to the supported download
// formats: delimited text and a paginated plain-text document.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/imanibom/churchAccounts/internal/report"
)

// LinesPerPage is how many report lines fit on one document page before a
// page break is emitted.
const LinesPerPage = 34

const documentRule = "==================="

// CSV writes the aggregate rows as delimited text with a header row.
func CSV(w io.Writer, rows []report.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Subhead", "Debit", "Credit"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		rec := []string{r.Category, r.Subhead, r.Debit.String(), r.Credit.String()}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Document writes the aggregate rows as a paginated plain-text report. Each
// page opens with the title; once LinesPerPage row lines have been written
// a form feed starts the next page.
func Document(w io.Writer, title string, rows []report.Row) error {
	if title == "" {
		title = "Financial Report"
	}
	if err := writeHeader(w, title); err != nil {
		return err
	}
	lines := 0
	for _, r := range rows {
		if lines == LinesPerPage {
			if _, err := fmt.Fprint(w, "\f"); err != nil {
				return err
			}
			if err := writeHeader(w, title); err != nil {
				return err
			}
			lines = 0
		}
		_, err := fmt.Fprintf(w, "%s - %s: Debit=%s, Credit=%s\n",
			r.Category, r.Subhead, r.Debit.String(), r.Credit.String())
		if err != nil {
			return err
		}
		lines++
	}
	return nil
}

func writeHeader(w io.Writer, title string) error {
	_, err := fmt.Fprintf(w, "%s\n%s\n", title, documentRule)
	return err
}
