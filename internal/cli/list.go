package cli

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/imanibom/churchAccounts/internal/core"
)

type listCmd struct {
	user string
	tail int
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list recorded transactions" }
func (*listCmd) Usage() string {
	return `churchctl list [-user <name>] [-tail <n>]

  Lists transactions in the order they were recorded.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.user, "user", "", "Show only this user's transactions.")
	f.IntVar(&c.tail, "tail", 0, "Show only the last N transactions.")
}

func (c *listCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	if c.tail > 0 && len(rows) > c.tail {
		rows = rows[len(rows)-c.tail:]
	}

	printMarkdown(transactionsMarkdown(rows))
	return subcommands.ExitSuccess
}
