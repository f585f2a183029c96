package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/ledger"
)

type stubStore struct {
	rows []core.Transaction
}

func (s *stubStore) Load(context.Context) ([]core.Transaction, error) {
	return append([]core.Transaction(nil), s.rows...), nil
}

func (s *stubStore) Save(_ context.Context, rows []core.Transaction) error {
	s.rows = append([]core.Transaction(nil), rows...)
	return nil
}

func newTestServer() (*Server, *stubStore) {
	st := &stubStore{}
	cats := core.NewCategorySet(core.DefaultCategories, core.DefaultExpenditureCategory)
	engine := ledger.New(st, cats, nil, false, nil)
	return New(engine, time.Minute), st
}

func doJSON(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAddTransaction(t *testing.T) {
	srv, st := newTestServer()
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Expenditure","subhead":"Utilities","debit":"500"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.ID != "a0001" {
		t.Fatalf("id = %q, want a0001", tx.ID)
	}
	if tx.Debit.Cents != 50000 {
		t.Fatalf("debit = %d, want 50000", tx.Debit.Cents)
	}
	if len(st.rows) != 1 {
		t.Fatalf("store has %d rows, want 1", len(st.rows))
	}
}

func TestAddTransactionFormEncoded(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	form := url.Values{}
	form.Set("date", "2025-03-09")
	form.Set("category", "Fundraising")
	form.Set("credit", "12,34")
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var tx core.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tx.Credit.Cents != 1234 {
		t.Fatalf("credit = %d, want 1234", tx.Credit.Cents)
	}
}

func TestEditTransaction(t *testing.T) {
	srv, st := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Fundraising","credit":"100"}`)

	rec := doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"id":"a0001","date":"2025-03-10","category":"Expenditure","subhead":"Repairs","debit":"40"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if len(st.rows) != 1 {
		t.Fatalf("edit appended instead of replacing: %d rows", len(st.rows))
	}
	if st.rows[0].Subhead != "Repairs" {
		t.Fatalf("row not edited: %+v", st.rows[0])
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"03/09/2025","category":"Expenditure"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad date: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Bake Sale"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad category: status = %d, want 400", rec.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, st := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Fundraising","credit":"100"}`)

	rec := doJSON(t, h, http.MethodDelete, "/api/transactions/a0001", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(st.rows) != 0 {
		t.Fatalf("row not deleted: %+v", st.rows)
	}

	// Absent ids are a silent no-op, still 204.
	rec = doJSON(t, h, http.MethodDelete, "/api/transactions/z9999", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestUndo(t *testing.T) {
	srv, st := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Fundraising","credit":"100"}`)
	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-10","category":"Expenditure","debit":"30"}`)

	rec := doJSON(t, h, http.MethodPost, "/api/undo", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
	if len(st.rows) != 1 || st.rows[0].ID != "a0001" {
		t.Fatalf("unexpected rows after undo: %+v", st.rows)
	}
}

func TestReportJSON(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Expenditure","subhead":"Utilities","debit":"500"}`)

	rec := doJSON(t, h, http.MethodGet, "/api/report?start=2025-03-09&end=2025-03-09", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		Report []struct {
			Category string `json:"category"`
			Subhead  string `json:"subhead"`
			Debit    string `json:"debit"`
			Credit   string `json:"credit"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Report) != 1 {
		t.Fatalf("got %d aggregate rows, want 1", len(body.Report))
	}
	got := body.Report[0]
	if got.Category != "Expenditure" || got.Subhead != "Utilities" || got.Debit != "500.00" || got.Credit != "0.00" {
		t.Fatalf("unexpected aggregate: %+v", got)
	}
}

func TestReportRequiresDates(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()
	rec := doJSON(t, h, http.MethodGet, "/api/report?start=2025-03-09", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestReportCSVFormat(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Expenditure","subhead":"Utilities","debit":"500"}`)

	rec := doJSON(t, h, http.MethodGet, "/api/report?start=2025-03-01&end=2025-03-31&format=csv", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Expenditure,Utilities,500.00,0.00") {
		t.Fatalf("csv body missing row:\n%s", rec.Body.String())
	}
}

func TestReportCacheFlushedByMutation(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Fundraising","credit":"100"}`)

	target := "/api/report?start=2025-03-01&end=2025-03-31"
	doJSON(t, h, http.MethodGet, target, "")

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-10","category":"Fundraising","credit":"50"}`)

	rec := doJSON(t, h, http.MethodGet, target, "")
	var body struct {
		Report []struct {
			Credit string `json:"credit"`
		} `json:"report"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Report) != 1 || body.Report[0].Credit != "150.00" {
		t.Fatalf("stale report served after mutation: %+v", body.Report)
	}
}

func TestSummary(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Weekly Collection","credit":"1000"}`)
	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-10","category":"Expenditure","debit":"300"}`)

	rec := doJSON(t, h, http.MethodGet, "/api/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var got struct {
		Income      string `json:"income"`
		Expenditure string `json:"expenditure"`
		Net         string `json:"net"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Income != "1000.00" || got.Expenditure != "300.00" || got.Net != "700.00" {
		t.Fatalf("summary = %+v", got)
	}
}

func TestCategories(t *testing.T) {
	srv, _ := newTestServer()
	h := srv.Handler()

	doJSON(t, h, http.MethodPost, "/api/transactions",
		`{"date":"2025-03-09","category":"Expenditure","subhead":"Utilities","debit":"1"}`)

	rec := doJSON(t, h, http.MethodGet, "/api/categories", "")
	var got struct {
		Categories []string `json:"categories"`
		Subheads   []string `json:"subheads"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got.Categories) != 4 {
		t.Fatalf("categories = %v", got.Categories)
	}
	if len(got.Subheads) != 1 || got.Subheads[0] != "Utilities" {
		t.Fatalf("subheads = %v", got.Subheads)
	}
}
