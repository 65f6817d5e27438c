// Package api exposes the query engine and dataset store over a small HTTP
// JSON API for the dashboard view layer. Each read request loads the dataset
// from disk fresh; nothing is cached between requests.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"taxatlas/internal/auth"
	"taxatlas/internal/logging"
	"taxatlas/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	router   *http.ServeMux
	server   *http.Server
	addr     string
	logger   *logging.Logger
	store    *store.Store
	verifier *auth.Verifier
	metrics  *Metrics
}

// NewServer creates a new HTTP server instance. metrics may be nil to
// disable the /metrics endpoint.
func NewServer(addr string, st *store.Store, verifier *auth.Verifier, logger *logging.Logger, metrics *Metrics) *Server {
	s := &Server{
		addr:     addr,
		logger:   logger,
		store:    st,
		verifier: verifier,
		metrics:  metrics,
		router:   http.NewServeMux(),
	}

	s.registerRoutes()

	handler := s.applyMiddleware(s.router)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server and blocks until shutdown
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": s.addr,
	})

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server", nil)

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

// ServeHTTP implements http.Handler for testing
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.server.Handler.ServeHTTP(w, r)
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.HandleFunc("/health", s.handleHealth)

	s.router.HandleFunc("/api/jurisdictions", s.handleJurisdictions) // GET list, POST upsert
	s.router.HandleFunc("/api/jurisdictions/", s.handleDetail)       // GET /api/jurisdictions/:country
	s.router.HandleFunc("/api/summary", s.handleSummary)
	s.router.HandleFunc("/api/top", s.handleTop)

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics.Handler())
	}
}

// applyMiddleware wraps the handler with middleware in the correct order
func (s *Server) applyMiddleware(handler http.Handler) http.Handler {
	// Applied in reverse order (last one wraps first)
	handler = RecoveryMiddleware(s.logger)(handler)
	handler = LoggingMiddleware(s.logger, s.metrics)(handler)
	handler = RequestIDMiddleware()(handler)
	handler = CORSMiddleware()(handler)
	return handler
}
