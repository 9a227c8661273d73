// Package server provides the HTTP REST API for the resume tailor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jonathan/resume-tailor/internal/ident"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Store persists resumes and tailored results. Getters return nil, nil when
// the record does not exist.
type Store interface {
	tailoring.Store
	SaveResume(ctx context.Context, resume *types.Resume) error
	GetResume(ctx context.Context, id string) (*types.Resume, error)
	GetTailoredResume(ctx context.Context, id string) (*types.TailoredResume, error)
	GetLatestTailoredResume(ctx context.Context, resumeID string) (*types.TailoredResume, error)
}

// Config holds server configuration
type Config struct {
	Port           int
	AllowedOrigins []string
	MaxUploadSize  int64
	AllowedTypes   []string
	UploadDir      string
	RateLimit      int // Tailor requests per client per minute
}

// Server is the HTTP API
type Server struct {
	httpServer  *http.Server
	engine      *tailoring.Engine
	store       Store
	acceptor    *ingestion.Acceptor
	rateLimiter *ratelimit.Limiter
	logger      *zap.Logger
	stamper     ident.Stamper
	validate    *validator.Validate
	origins     map[string]bool
}

// New creates a server. A nil store keeps records in memory.
func New(cfg Config, engine *tailoring.Engine, store Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if store == nil {
		store = NewMemoryStore()
	}

	s := &Server{
		engine:      engine,
		store:       store,
		acceptor:    ingestion.NewAcceptor(cfg.MaxUploadSize, cfg.AllowedTypes),
		rateLimiter: ratelimit.NewLimiter(ratelimit.NewConfig(cfg.RateLimit)),
		logger:      logger,
		validate:    validator.New(),
		origins:     make(map[string]bool, len(cfg.AllowedOrigins)),
	}
	s.acceptor.Directory = cfg.UploadDir
	s.validate.RegisterTagNameFunc(jsonFieldName)
	for _, origin := range cfg.AllowedOrigins {
		s.origins[origin] = true
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/v1/health", s.handleHealthV1)

	mux.HandleFunc("POST /api/v1/resumes", s.handleCreateResume)
	mux.HandleFunc("POST /api/v1/resumes/upload", s.handleUploadResume)
	mux.HandleFunc("GET /api/v1/resumes/{id}", s.handleGetResume)
	mux.HandleFunc("GET /api/v1/resumes/{id}/tailored", s.handleGetLatestTailored)

	mux.HandleFunc("POST /api/v1/keywords", s.handleKeywords)
	mux.HandleFunc("POST /api/v1/score", s.handleScore)
	mux.HandleFunc("POST /api/v1/tailor", s.handleTailor)
	mux.HandleFunc("GET /api/v1/tailored/{id}", s.handleGetTailored)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Tailoring waits on the model
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the root handler including middleware
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	defer s.rateLimiter.Stop()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// Close releases background resources without serving
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, code, message string) {
	s.jsonResponse(w, status, ErrorBody{Error: code, Message: message})
}
