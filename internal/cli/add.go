package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/subcommands"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/ledger"
)

type addCmd struct {
	id       string
	date     string
	category string
	subhead  string
	debit    string
	credit   string
	user     string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "record a transaction, or edit one by id" }
func (*addCmd) Usage() string {
	return `churchctl add -category <category> [-date <YYYY-MM-DD>] [-subhead <label>] [-debit <amount>] [-credit <amount>] [-id <id>] [-user <name>]

  Records a transaction in the ledger. With -id, the matching row is
  edited in place instead and keeps its identifier. Amounts that do not
  parse are recorded as zero.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.id, "id", "", "Identifier of an existing row to edit. Empty appends a new row.")
	f.StringVar(&c.date, "date", time.Now().Format(core.DateLayout), "Transaction date (YYYY-MM-DD).")
	f.StringVar(&c.category, "category", "", "Transaction category. Must be one of the configured categories.")
	f.StringVar(&c.subhead, "subhead", "", "Free-form sub-classification under the category.")
	f.StringVar(&c.debit, "debit", "", "Debit amount, e.g. 500 or 12.34.")
	f.StringVar(&c.credit, "credit", "", "Credit amount, e.g. 500 or 12.34.")
	f.StringVar(&c.user, "user", "", "Owning user when the ledger runs in multi-user mode.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, cleanup, err := openEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	tx, err := engine.AddOrEdit(ctx, c.id, ledger.Input{
		Date:     c.date,
		Category: c.category,
		Subhead:  c.subhead,
		Debit:    c.debit,
		Credit:   c.credit,
		User:     c.user,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(transactionsMarkdown([]core.Transaction{tx}))
	return subcommands.ExitSuccess
}
