// Package server exposes the suggestion engine and the ClickUp pipeline as
// a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/rocketdigital/taskpilot/internal/telemetry"
)

// Options configures a Server.
type Options struct {
	Addr           string
	AllowedOrigins []string
	Suggester      SuggesterFunc
	ClickUp        ClickUpFunc
	Telemetry      telemetry.Client
	Logger         *slog.Logger
	Version        string
}

type Server struct {
	suggester SuggesterFunc
	clickup   ClickUpFunc
	telemetry telemetry.Client
	log       *slog.Logger
	origins   map[string]struct{}
	version   string
	server    *http.Server
}

func New(opts Options) *Server {
	s := &Server{
		suggester: opts.Suggester,
		clickup:   opts.ClickUp,
		telemetry: opts.Telemetry,
		log:       opts.Logger,
		origins:   make(map[string]struct{}, len(opts.AllowedOrigins)),
		version:   opts.Version,
	}
	if s.telemetry == nil {
		s.telemetry = telemetry.NewNoopClient()
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	for _, o := range opts.AllowedOrigins {
		s.origins[o] = struct{}{}
	}

	s.server = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.registerRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the fully wrapped route tree.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		s.log.Info("API server listening", "addr", s.server.Addr)
		s.telemetry.Track(telemetry.EventServerStarted, nil)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
