// Package sheets implements the ledger store on a Google Sheets
// spreadsheet. Save clears the sheet and rewrites header plus all rows,
// which keeps the whole-table rewrite contract of the other backends.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/store"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Store struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ store.Store = (*Store)(nil)

// New creates a Sheets-backed store. Credentials come from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
func New(ctx context.Context, spreadsheetID, sheetName string) (*Store, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	sheetName = strings.TrimSpace(sheetName)
	if sheetName == "" {
		sheetName = "Records"
	}
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return &Store{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Load fetches the whole table range. An empty sheet is an empty ledger.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	rng := fmt.Sprintf("%s!A:H", s.sheetName)
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", core.ErrStoreUnavailable, rng, err)
	}

	var rows []core.Transaction
	for i, raw := range resp.Values {
		cols := toStrings(raw)
		if i == 0 && len(cols) > 0 && cols[0] == store.Columns[0] {
			continue
		}
		if len(cols) < len(store.Columns) {
			cols = append(cols, make([]string, len(store.Columns)-len(cols))...)
		}
		if strings.TrimSpace(cols[0]) == "" {
			continue
		}
		date, err := core.ParseDate(cols[1])
		if err != nil {
			return nil, fmt.Errorf("%w: sheet row %d: %v", core.ErrStoreUnavailable, i+1, err)
		}
		rows = append(rows, core.Transaction{
			ID:       cols[0],
			Date:     date,
			Category: cols[2],
			Subhead:  cols[3],
			Debit:    core.ParseAmount(cols[4]),
			Credit:   core.ParseAmount(cols[5]),
			User:     cols[6],
			Balance:  core.ParseSignedAmount(cols[7]),
		})
	}
	return rows, nil
}

// Save clears the table range and writes header plus every row in order.
func (s *Store) Save(ctx context.Context, rows []core.Transaction) error {
	rng := fmt.Sprintf("%s!A:H", s.sheetName)
	if _, err := s.svc.Spreadsheets.Values.Clear(s.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: clear %s: %v", core.ErrStoreUnavailable, rng, err)
	}

	values := make([][]any, 0, len(rows)+1)
	header := make([]any, len(store.Columns))
	for i, c := range store.Columns {
		header[i] = c
	}
	values = append(values, header)
	for _, t := range rows {
		values = append(values, []any{
			t.ID,
			t.Date.String(),
			t.Category,
			t.Subhead,
			t.Debit.String(),
			t.Credit.String(),
			t.User,
			t.Balance.String(),
		})
	}

	vr := &gsheet.ValueRange{Values: values}
	writeRange := fmt.Sprintf("%s!A1", s.sheetName)
	if _, err := s.svc.Spreadsheets.Values.Update(s.spreadsheetID, writeRange, vr).
		ValueInputOption("RAW").Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: update %s: %v", core.ErrStoreUnavailable, writeRange, err)
	}
	slog.DebugContext(ctx, "Ledger saved to sheet", "sheet", s.sheetName, "rows", len(rows))
	return nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
