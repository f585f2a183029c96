// Package http exposes the ledger engine and report builder over a JSON
// HTTP API.
package http

import (
	"net/http"
	"time"

	"github.com/imanibom/churchAccounts/internal/cache"
	"github.com/imanibom/churchAccounts/internal/core"
	"github.com/imanibom/churchAccounts/internal/ledger"
	applog "github.com/imanibom/churchAccounts/internal/log"
	"github.com/imanibom/churchAccounts/internal/report"
)

const reportCacheSize = 64

type Server struct {
	engine      *ledger.Engine
	reportCache *cache.LRU[[]report.Row]
}

// New builds the API server around an engine. Report aggregates are cached
// for cacheTTL and flushed on every mutation.
func New(engine *ledger.Engine, cacheTTL time.Duration) *Server {
	return &Server{
		engine:      engine,
		reportCache: cache.NewLRU[[]report.Row](reportCacheSize, cacheTTL),
	}
}

// Handler returns the routed handler wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleUpsertTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)
	mux.HandleFunc("POST /api/undo", s.handleUndo)

	mux.HandleFunc("GET /api/report", s.handleReport)
	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/categories", s.handleCategories)

	return applog.Middleware(mux)
}

// NewHTTPServer wraps the API server in an http.Server with the timeouts
// the daemon runs with.
func NewHTTPServer(addr string, s *Server) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) categories() core.CategorySet {
	return s.engine.Categories()
}
