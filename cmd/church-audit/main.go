package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/imanibom/churchAccounts/internal/amqp"
	"github.com/imanibom/churchAccounts/internal/audit"
	"github.com/imanibom/churchAccounts/internal/config"
	applog "github.com/imanibom/churchAccounts/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo, "church-audit")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	trailPath := os.Getenv("AUDIT_TRAIL_PATH")
	if trailPath == "" {
		trailPath = "./data/audit_trail.jsonl"
	}
	trail, err := audit.NewTrail(trailPath)
	if err != nil {
		logger.Error("Failed to initialize audit trail", "error", err, "path", trailPath)
		os.Exit(1)
	}

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting audit worker",
		"queue", cfg.AMQPQueue,
		"trail", trailPath)

	err = client.ConsumeLedgerEvents(ctx, func(ev *amqp.LedgerEvent) error {
		if err := trail.Record(ev); err != nil {
			return err
		}
		logger.Info("Recorded ledger event",
			"op", ev.Op, "id", ev.ID, "rows", ev.Rows)
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Audit worker stopped")
}
