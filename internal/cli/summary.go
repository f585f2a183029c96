package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/report"
)

type summaryCmd struct {
	user string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "show income, expenditure and net balance" }
func (*summaryCmd) Usage() string {
	return `churchctl summary [-user <name>]

  Shows total income, total expenditure and the net balance over the
  whole ledger.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Summarize only this user's transactions.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	engine, cleanup, err := openEngine(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	defer cleanup()

	var rows []core.Transaction
	if c.user != "" {
		rows, err = engine.ListUser(ctx, c.user)
	} else {
		rows, err = engine.List(ctx)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	printMarkdown(summaryMarkdown(report.Summarize(rows, engine.Categories())))
	return subcommands.ExitSuccess
}
