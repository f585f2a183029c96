package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/export"
	"github.com/imanibom/churchAccounts/internal/ledger"
	"github.com/imanibom/churchAccounts/internal/report"
)

// upsertRequest is the add/edit payload. A non-empty ID edits the matching
// row in place; otherwise a fresh transaction is appended. Amounts arrive
// as strings and normalize leniently.
type upsertRequest struct {
	ID       string `json:"id"`
	Date     string `json:"date"`
	Category string `json:"category"`
	Subhead  string `json:"subhead"`
	Debit    string `json:"debit"`
	Credit   string `json:"credit"`
	User     string `json:"user"`
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	var (
		rows []core.Transaction
		err  error
	)
	if user := strings.TrimSpace(r.URL.Query().Get("user")); user != "" {
		rows, err = s.engine.ListUser(r.Context(), user)
	} else {
		rows, err = s.engine.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	if rows == nil {
		rows = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": rows})
}

func (s *Server) handleUpsertTransaction(w http.ResponseWriter, r *http.Request) {
	req, err := parseUpsert(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	tx, err := s.engine.AddOrEdit(r.Context(), req.ID, ledger.Input{
		Date:     req.Date,
		Category: req.Category,
		Subhead:  req.Subhead,
		Debit:    req.Debit,
		Credit:   req.Credit,
		User:     req.User,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	s.reportCache.Flush()

	status := http.StatusCreated
	if req.ID != "" && req.ID == tx.ID {
		status = http.StatusOK // edited in place
	}
	writeJSON(w, status, tx)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if err := s.engine.Delete(r.Context(), id, user); err != nil {
		writeError(w, err)
		return
	}
	// Deleting an absent id is a silent no-op, so 204 either way.
	s.reportCache.Flush()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.UndoLast(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	s.reportCache.Flush()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := core.ParseDate(q.Get("start"))
	if err != nil {
		writeError(w, fmt.Errorf("start: %w", err))
		return
	}
	end, err := core.ParseDate(q.Get("end"))
	if err != nil {
		writeError(w, fmt.Errorf("end: %w", err))
		return
	}
	criteria := report.Criteria{
		Start:    start,
		End:      end,
		Category: strings.TrimSpace(q.Get("category")),
		Subhead:  strings.TrimSpace(q.Get("subhead")),
	}

	cacheKey := fmt.Sprintf("%s|%s|%s|%s", start, end, criteria.Category, criteria.Subhead)
	rows, ok := s.reportCache.Get(cacheKey)
	if !ok {
		ledgerRows, err := s.engine.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		rows = report.Build(ledgerRows, criteria)
		s.reportCache.Set(cacheKey, rows)
	}

	switch q.Get("format") {
	case "", "json":
		if rows == nil {
			rows = []report.Row{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"report": rows})
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="report.csv"`)
		if err := export.CSV(w, rows); err != nil {
			writeError(w, err)
		}
	case "document":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="report.txt"`)
		if err := export.Document(w, "Financial Report", rows); err != nil {
			writeError(w, err)
		}
	default:
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "format must be json, csv or document"})
	}
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var (
		rows []core.Transaction
		err  error
	)
	if user := strings.TrimSpace(r.URL.Query().Get("user")); user != "" {
		rows, err = s.engine.ListUser(r.Context(), user)
	} else {
		rows, err = s.engine.List(r.Context())
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(rows, s.categories()))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	subheads, err := s.engine.Subheads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if subheads == nil {
		subheads = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": s.categories().Names(),
		"subheads":   subheads,
	})
}

// parseUpsert accepts either a JSON body or form-encoded fields.
func parseUpsert(r *http.Request) (upsertRequest, error) {
	var req upsertRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid JSON body: %w", err)
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return req, fmt.Errorf("invalid form body: %w", err)
		}
		req = upsertRequest{
			ID:       r.PostForm.Get("id"),
			Date:     r.PostForm.Get("date"),
			Category: r.PostForm.Get("category"),
			Subhead:  r.PostForm.Get("subhead"),
			Debit:    r.PostForm.Get("debit"),
			Credit:   r.PostForm.Get("credit"),
			User:     r.PostForm.Get("user"),
		}
	}
	req.ID = strings.TrimSpace(req.ID)
	return req, nil
}
