// Package httpapi exposes retrieval and answering over a local HTTP API.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/custodia-labs/kotae-cli/internal/core/ports/driving"
	"github.com/custodia-labs/kotae-cli/internal/logger"
)

// Server timeouts.
const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 120 * time.Second
	idleTimeout     = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Ports holds the driving-port dependencies of the server. Answer and
// History are optional; their routes respond 503 / empty when absent.
type Ports struct {
	Search  driving.GroundingSearch
	Answer  driving.AnswerService
	History driving.HistoryService
}

// Server serves the HTTP API. Routes:
//
//	GET  /api/search?q=   retrieval only
//	POST /api/ask         grounded answer
//	GET  /api/history     recent searches
//	GET  /healthz         liveness
type Server struct {
	addr       string
	ports      Ports
	httpServer *http.Server
}

// NewServer creates a new HTTP API server bound to addr.
func NewServer(addr string, ports Ports) *Server {
	s := &Server{addr: addr, ports: ports}
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
	return s
}

// Handler builds the route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/search", s.handleSearch)
	mux.HandleFunc("POST /api/ask", s.handleAsk)
	mux.HandleFunc("GET /api/history", s.handleHistory)

	return withRecovery(withLogging(withRequestID(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
