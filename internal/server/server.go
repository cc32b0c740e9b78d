// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the conversion dispatcher over HTTP: an upload
// form, a multipart conversion endpoint and capability and health probes.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/pdiddy/docx2pdf/pkg/types"
)

//go:embed templates/index.html
var templates embed.FS

// Converter runs conversions and reports the installed backends.
// *convert.Dispatcher implements it.
type Converter interface {
	Run(req types.ConversionRequest) (types.ConversionResult, error)
	Capabilities() types.Capabilities
}

// Server is the HTTP upload service.
type Server struct {
	cfg      types.ServerConfig
	conv     Converter
	log      *zap.Logger
	sem      *semaphore.Weighted
	inFlight atomic.Int64
	index    *template.Template
	engine   *gin.Engine
}

// New creates the upload and output directories and wires the routes.
func New(cfg types.ServerConfig, conv Converter, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, dir := range []string{cfg.UploadDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	index, err := template.ParseFS(templates, "templates/index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing upload form: %w", err)
	}

	limit := cfg.MaxConcurrent
	if limit <= 0 {
		limit = 1
	}
	s := &Server{
		cfg:   cfg,
		conv:  conv,
		log:   log,
		sem:   semaphore.NewWeighted(limit),
		index: index,
	}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestID(), accessLog(s.log), recovery(s.log))

	r.GET("/", s.handleIndex)
	r.GET("/health", s.handleHealth)
	r.GET("/backends", s.handleBackends)
	r.POST("/convert", bodyLimit(s.cfg.MaxUploadBytes), s.handleConvert)
	return r
}

// Handler returns the routed http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on cfg.Addr until ctx is cancelled, then shuts down
// gracefully within cfg.ShutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.Addr,
		Handler: s.engine,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}
