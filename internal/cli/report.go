package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/export"
	"github.com/imanibom/churchAccounts/internal/report"
)

type reportCmd struct {
	start    string
	end      string
	category string
	subhead  string
	format   string
	output   string
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "build a grouped debit/credit report for a date range" }
func (*reportCmd) Usage() string {
	return `churchctl report -start <YYYY-MM-DD> -end <YYYY-MM-DD> [-category <category>] [-subhead <label>] [-format table|csv|document] [-o <file>]

  Aggregates transactions in the inclusive date range, grouped by category
  and subhead. The default table renders on the terminal; csv and document
  write export formats, to stdout or to -o.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.start, "start", "", "Start of the date range, inclusive (YYYY-MM-DD).")
	f.StringVar(&c.end, "end", "", "End of the date range, inclusive (YYYY-MM-DD).")
	f.StringVar(&c.category, "category", "", "Restrict the report to one category.")
	f.StringVar(&c.subhead, "subhead", "", "Restrict the report to one subhead.")
	f.StringVar(&c.format, "format", "table", "Output format: table, csv or document.")
	f.StringVar(&c.output, "o", "", "Write csv or document output to this file instead of stdout.")
}

func (c *reportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	start, err := core.ParseDate(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing start date: %v\n", err)
		return subcommands.ExitUsageError
	}
	end, err := core.ParseDate(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing end date: %v\n", err)
		return subcommands.ExitUsageError
	}

	engine, cleanup, err := openEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	ledgerRows, err := engine.List(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	rows := report.Build(ledgerRows, report.Criteria{
		Start:    start,
		End:      end,
		Category: c.category,
		Subhead:  c.subhead,
	})

	switch c.format {
	case "table":
		printMarkdown(reportMarkdown(rows))
		return subcommands.ExitSuccess
	case "csv":
		return c.write(rows, export.CSV)
	case "document":
		return c.write(rows, func(w io.Writer, rows []report.Row) error {
			return export.Document(w, "Financial Report", rows)
		})
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown format %q, must be table, csv or document.\n", c.format)
		return subcommands.ExitUsageError
	}
}

func (c *reportCmd) write(rows []report.Row, fn func(io.Writer, []report.Row) error) subcommands.ExitStatus {
	var w io.Writer = os.Stdout
	if c.output != "" {
		file, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		w = file
	}
	if err := fn(w, rows); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
