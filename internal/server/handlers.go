package server

import (
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hokkyo/pdfsearch/internal/models"
	"github.com/hokkyo/pdfsearch/internal/search"
)

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "missing query parameter q")
		return
	}
	s.logger.Debug("search request", zap.String("query", query))
	start := time.Now()
	results := search.Search(s.snapshotDocs(), query)
	s.respondJSON(w, http.StatusOK, &models.SearchResponse{
		Query:     query,
		Results:   results,
		Total:     len(results),
		QueryTime: time.Since(start).Milliseconds(),
	})
}

func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	s.logger.Debug("reindex request")
	n, err := s.Reindex()
	if err != nil {
		s.logger.Error("reindex failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{"status": "reindexed", "documents": n})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	info, err := s.store.Stat()
	if err != nil {
		s.logger.Error("status: snapshot stat failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"documents": len(s.snapshotDocs()),
		"snapshot":  info,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("response encoding failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
