// Package server provides the HTTP API for pdfsearch.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hokkyo/pdfsearch/internal/config"
	"github.com/hokkyo/pdfsearch/internal/models"
	"github.com/hokkyo/pdfsearch/internal/snapshot"
)

// RebuildFunc reindexes the directory from scratch and returns the new index.
type RebuildFunc func() ([]models.Document, error)

// Server answers queries against an in-memory index and can swap that index
// out on reindex. Queries take a read lock; a rebuild takes the write lock,
// so searches never observe a half-replaced index.
type Server struct {
	mu      sync.RWMutex
	docs    []models.Document
	rebuild RebuildFunc
	store   *snapshot.Store
	config  *config.ServerConfig
	logger  *zap.Logger
	server  *http.Server
}

// NewServer creates a server holding docs as its initial index.
func NewServer(
	docs []models.Document,
	rebuild RebuildFunc,
	store *snapshot.Store,
	cfg *config.ServerConfig,
	logger *zap.Logger,
) *Server {
	return &Server{
		docs:    docs,
		rebuild: rebuild,
		store:   store,
		config:  cfg,
		logger:  logger,
	}
}

// Router returns the HTTP handler with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/api/v1/search", s.handleSearch)
	r.Post("/api/v1/reindex", s.handleReindex)
	r.Get("/api/v1/status", s.handleStatus)
	r.Get("/health", s.handleHealth)
	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

// Reindex rebuilds the index and swaps it in. Used by the reindex endpoint
// and by the directory watcher.
func (s *Server) Reindex() (int, error) {
	docs, err := s.rebuild()
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.docs = docs
	s.mu.Unlock()
	return len(docs), nil
}

// snapshotDocs returns the current index under the read lock.
func (s *Server) snapshotDocs() []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs
}
