package backend

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imanibom/churchAccounts/internal/amqp"
	"github.com/imanibom/churchAccounts/internal/config"
	"github.com/imanibom/churchAccounts/internal/store/csvfile"
	"github.com/imanibom/churchAccounts/internal/store/sheets"
	"github.com/imanibom/churchAccounts/internal/store/sqlite"
)

// Factory builds backends from application configuration.
type Factory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{logger: logger}
}

// Create constructs the store named by cfg.DataBackend and, when an AMQP
// URL is configured, the event publisher. A broker that cannot be reached
// is logged and skipped; mutations then proceed without events.
func (f *Factory) Create(ctx context.Context, cfg *config.Config) (*Result, error) {
	t := Type(cfg.DataBackend)
	if !t.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.DataBackend)
	}

	result := &Result{}
	switch t {
	case CSVBackend:
		result.Store = csvfile.New(cfg.CSVPath)
		f.logger.Info("Initialized CSV ledger store", "path", cfg.CSVPath)

	case SQLiteBackend:
		st, err := sqlite.New(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		result.Store = st
		result.Cleanup = st.Close
		f.logger.Info("Initialized SQLite ledger store", "db_path", cfg.SQLiteDBPath)

	case SheetsBackend:
		st, err := sheets.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName)
		if err != nil {
			return nil, fmt.Errorf("initialize sheets store: %w", err)
		}
		result.Store = st
		f.logger.Info("Initialized Google Sheets ledger store",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	}

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			result.Events = client
			prev := result.Cleanup
			result.Cleanup = func() error {
				err := client.Close()
				if prev != nil {
					if perr := prev(); err == nil {
						err = perr
					}
				}
				return err
			}
			f.logger.Info("Initialized AMQP event publisher",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	return result, nil
}
