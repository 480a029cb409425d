package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/kisanmitra/formbridge/internal/core/ports/driven"
	"github.com/kisanmitra/formbridge/internal/core/ports/driving"
	"github.com/kisanmitra/formbridge/internal/logger"
)

// Config configures the HTTP server.
type Config struct {
	// ListenAddr is the host:port to serve on.
	ListenAddr string

	// CORSOrigins lists allowed origins; ["*"] allows any.
	CORSOrigins []string
}

// Server serves the formbridge REST API.
type Server struct {
	cfg        Config
	metadata   driving.MetadataService
	submission driving.SubmissionService
	verifier   driven.TokenVerifier
	httpServer *http.Server
}

// NewServer wires the API surface onto the given services.
func NewServer(cfg Config, metadata driving.MetadataService, submission driving.SubmissionService, verifier driven.TokenVerifier) *Server {
	s := &Server{
		cfg:        cfg,
		metadata:   metadata,
		submission: submission,
		verifier:   verifier,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// Write deadline must outlast the slowest upstream path: a
		// submit is a create plus a transition, each up to 30s.
		WriteTimeout: 90 * time.Second,
	}
	return s
}

// Handler builds the routed, middleware-wrapped handler. Exposed for
// tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	protected := func(h http.HandlerFunc) http.Handler {
		return withAuth(s.verifier, h)
	}
	mux.Handle("GET /api/doctype", protected(s.handleListDoctypes))
	mux.Handle("GET /api/doctype/{name}", protected(s.handleGetDoctype))
	mux.Handle("GET /api/link-options/{doctype}", protected(s.handleLinkOptions))
	mux.Handle("GET /api/link-options/{doctype}/count", protected(s.handleLinkOptionsCount))
	mux.Handle("POST /api/sync", protected(s.handleSync))

	var handler http.Handler = mux
	handler = withCORS(s.cfg.CORSOrigins, handler)
	handler = withRequestLog(handler)
	handler = withRecovery(handler)
	return handler
}

// ListenAndServe serves until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening on %s", s.cfg.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}
