package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/imanibom/churchAccounts/internal/backend"
	"github.com/imanibom/churchAccounts/internal/config"
	"github.com/imanibom/churchAccounts/internal/core"
	apphttp "github.com/imanibom/churchAccounts/internal/http"
	"github.com/imanibom/churchAccounts/internal/ledger"
	applog "github.com/imanibom/churchAccounts/internal/log"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(slog.LevelInfo, "churchd")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := backend.NewFactory(logger.Logger).Create(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	var events ledger.EventPublisher
	if result.Events != nil {
		events = result.Events
	}
	cats := core.NewCategorySet(cfg.Categories, cfg.ExpenditureCategory)
	engine := ledger.New(result.Store, cats, events, cfg.MultiUser, logger.Logger)

	srv := apphttp.NewHTTPServer(":"+cfg.Port, apphttp.New(engine, cfg.ReportCacheTTL))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting churchd server",
			"port", cfg.Port,
			"backend", cfg.DataBackend,
			"multi_user", cfg.MultiUser)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}
