// Package cli implements the churchctl subcommands. Every command boots the
// ledger engine from environment configuration, applies one operation and
// exits; state lives entirely in the configured backend.
package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"

	"github.com/imanibom/churchAccounts/internal/backend"
	"github.com/imanibom/churchAccounts/internal/config"
	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/ledger"
)

// Register wires all subcommands into the commander.
func Register(c *subcommands.Commander) {
	c.Register(&addCmd{}, "ledger")
	c.Register(&deleteCmd{}, "ledger")
	c.Register(&undoCmd{}, "ledger")
	c.Register(&listCmd{}, "ledger")

	c.Register(&reportCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
}

// openEngine loads .env and the environment configuration, builds the
// configured backend and returns a ready engine. The cleanup function
// releases backend resources and must be called before exit.
func openEngine(ctx context.Context) (*ledger.Engine, func() error, error) {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	// Keep backend chatter off the terminal; commands print their own output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	result, err := backend.NewFactory(logger).Create(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	var events ledger.EventPublisher
	if result.Events != nil {
		events = result.Events
	}
	cleanup := result.Cleanup
	if cleanup == nil {
		cleanup = func() error { return nil }
	}

	cats := core.NewCategorySet(cfg.Categories, cfg.ExpenditureCategory)
	return ledger.New(result.Store, cats, events, cfg.MultiUser, logger), cleanup, nil
}
