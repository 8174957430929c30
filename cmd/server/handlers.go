package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/textlabs/CorpusDNA/pkg/corpusdna"
	"github.com/textlabs/CorpusDNA/pkg/logger"
)

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service corpusdna.Service
	config  *ServerConfig
	log     corpusdna.Logger
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	ChunkLength    int
	TopK           int
	Workers        int
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service corpusdna.Service, config *ServerConfig) *Server {
	return &Server{
		service: service,
		config:  config,
		log:     logger.GetLogger(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"service": "CorpusDNA API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":       "GET /health",
			"metrics":      "GET /api/health/metrics",
			"corpora":      "GET /api/corpora",
			"addCorpus":    "POST /api/corpora",
			"getCorpus":    "GET /api/corpora/{id}",
			"deleteCorpus": "DELETE /api/corpora/{id}",
			"compare":      "POST /api/compare",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	corpora, err := s.service.ListCorpora()
	if err != nil {
		s.log.Errorf("Failed to get corpus count: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	s.respondJSON(w, http.StatusOK, MetricsResponse{
		Status:       "healthy",
		DatabasePath: s.config.DBPath,
		CorpusCount:  len(corpora),
		ChunkLength:  s.config.ChunkLength,
	})
}

// handleCorpora handles GET and POST /api/corpora
func (s *Server) handleCorpora(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListCorpora(w, r)
	case http.MethodPost:
		s.handleAddCorpus(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleListCorpora handles GET /api/corpora
func (s *Server) handleListCorpora(w http.ResponseWriter, r *http.Request) {
	corpora, err := s.service.ListCorpora()
	if err != nil {
		s.log.Errorf("Failed to list corpora: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve corpora")
		return
	}

	dtos := make([]CorpusDTO, 0, len(corpora))
	for _, c := range corpora {
		dtos = append(dtos, CorpusDTO{
			ID:         c.ID,
			Label:      c.Label,
			Source:     c.Source,
			TokenCount: c.TokenCount,
			CreatedAt:  c.CreatedAt.Format(time.RFC3339),
		})
	}
	s.respondJSON(w, http.StatusOK, ListCorporaResponse{Corpora: dtos, Count: len(dtos)})
}

// handleAddCorpus handles POST /api/corpora
func (s *Server) handleAddCorpus(w http.ResponseWriter, r *http.Request) {
	var req AddCorpusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Tokens) > TokenWarningThreshold {
		s.log.Warnf("Large corpus upload: %q with %d tokens", req.Label, len(req.Tokens))
	}

	corpusID, err := s.service.AddCorpus(r.Context(), req.Label, req.Source, req.Tokens)
	if err != nil {
		s.log.Errorf("Failed to add corpus: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to add corpus")
		return
	}

	s.respondJSON(w, http.StatusCreated, AddCorpusResponse{
		Message:    "corpus added",
		ID:         corpusID,
		Label:      req.Label,
		TokenCount: len(req.Tokens),
	})
}

// handleCorpus handles GET and DELETE /api/corpora/{id}
func (s *Server) handleCorpus(w http.ResponseWriter, r *http.Request) {
	corpusID := strings.TrimPrefix(r.URL.Path, "/api/corpora/")
	if corpusID == "" || strings.Contains(corpusID, "/") {
		s.respondError(w, http.StatusBadRequest, "Invalid corpus ID")
		return
	}

	switch r.Method {
	case http.MethodGet:
		corpus, err := s.service.GetCorpusByID(corpusID)
		if err != nil {
			s.respondError(w, http.StatusNotFound, "Corpus not found")
			return
		}
		s.respondJSON(w, http.StatusOK, CorpusDTO{
			ID:         corpus.ID,
			Label:      corpus.Label,
			Source:     corpus.Source,
			TokenCount: corpus.TokenCount,
			CreatedAt:  corpus.CreatedAt.Format(time.RFC3339),
		})
	case http.MethodDelete:
		if _, err := s.service.GetCorpusByID(corpusID); err != nil {
			s.respondError(w, http.StatusNotFound, "Corpus not found")
			return
		}
		if err := s.service.DeleteCorpus(corpusID); err != nil {
			s.log.Errorf("Failed to delete corpus %s: %v", corpusID, err)
			s.respondError(w, http.StatusInternalServerError, "Failed to delete corpus")
			return
		}
		s.respondJSON(w, http.StatusOK, DeleteCorpusResponse{Message: "corpus deleted", ID: corpusID})
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleCompare handles POST /api/compare
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = s.config.TopK
	}

	if req.Inline() {
		result, err := s.service.CompareTokens(r.Context(), req.TokensA, req.TokensB, topK)
		if err != nil {
			s.log.Errorf("Inline comparison failed: %v", err)
			s.respondError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.respondJSON(w, http.StatusOK, toCompareResponse(result))
		return
	}

	idA, err := s.resolveCorpus(req.CorpusA)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}
	idB, err := s.resolveCorpus(req.CorpusB)
	if err != nil {
		s.respondError(w, http.StatusNotFound, err.Error())
		return
	}

	result, err := s.service.Compare(r.Context(), idA, idB, topK)
	if err != nil {
		s.log.Errorf("Comparison failed: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Comparison failed")
		return
	}
	s.respondJSON(w, http.StatusOK, toCompareResponse(result))
}

// resolveCorpus accepts either a corpus ID or a label.
func (s *Server) resolveCorpus(ref string) (string, error) {
	if c, err := s.service.GetCorpusByID(ref); err == nil {
		return c.ID, nil
	}
	corpora, err := s.service.ListCorpora()
	if err != nil {
		return "", err
	}
	for _, c := range corpora {
		if c.Label == ref {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("no corpus with ID or label %q", ref)
}
