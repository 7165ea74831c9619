// Package server provides the HTTP server for the Mergington High
// School activities API.
//
// The server exposes a small REST API over an in-memory activity
// registry, plus a static signup web UI.
//
// # Endpoints
//
//   - GET / - Redirects to the web UI
//   - GET /static/ - Web UI assets
//   - GET /health - Simple health check, returns "ok"
//   - GET /activities - Returns all activities keyed by name
//   - POST /activities/{activity}/signup?email= - Signs a student up
//   - DELETE /activities/{activity}/unregister?email= - Removes a student
//   - GET /metrics - Prometheus exposition
//
// # Example
//
//	srv, err := server.New(config.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mergington/activities/logging"
	"github.com/mergington/activities/metrics"
	"github.com/mergington/activities/registry"
	"github.com/mergington/activities/server/config"
	"github.com/mergington/activities/server/cron"
	"github.com/mergington/activities/server/handlers"
)

//go:embed static
var staticFiles embed.FS

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server is the HTTP server for the activities API.
type Server struct {
	addr        string
	logger      *slog.Logger
	registry    *registry.Registry
	metrics     *metrics.Metrics
	httpServer  *http.Server
	cronTrigger *cron.Trigger
}

// Option configures a Server.
type Option func(*Server) error

// WithListenAddr overrides the listen address from the config.
func WithListenAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// New creates a new Server from the given configuration. It builds the
// logger, seeds the registry, and wires up metrics and the optional
// roster reporter.
func New(cfg *config.ServerConfig, opts ...Option) (*Server, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	seed := registry.DefaultSeed()
	if cfg.SeedFile != "" {
		seed, err = registry.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, err
		}
		logger.Info("activity seed loaded", "seed_file", cfg.SeedFile, "activities", len(seed))
	}
	reg := registry.New(seed)

	s := &Server{
		addr:     cfg.Listener.Addr,
		logger:   logger,
		registry: reg,
		metrics:  metrics.New(reg),
	}

	if cfg.Monitoring.VictoriaMetricsURL != "" {
		hostname, err := os.Hostname()
		if err != nil {
			return nil, fmt.Errorf("failed to get hostname: %w", err)
		}

		pusher := metrics.NewPusher(metrics.PushConfig{
			URL:      cfg.Monitoring.VictoriaMetricsURL,
			Prefix:   cfg.Monitoring.MetricsPrefix,
			Job:      cfg.Monitoring.JobName,
			Instance: hostname,
		})
		reporter := NewRosterReporter(reg, pusher, logger)

		trigger, err := cron.New(cfg.Monitoring.PushSchedule, reporter, logger)
		if err != nil {
			return nil, fmt.Errorf("creating cron trigger: %w", err)
		}
		s.cronTrigger = trigger
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Logger returns the server's logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// Registry returns the activity registry.
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Handler returns the server's HTTP handler with all routes registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Run starts the HTTP server and blocks until the context is cancelled.
// It performs a graceful shutdown when the context is done. If a roster
// reporter is configured, its cron trigger is started automatically.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	if s.cronTrigger != nil {
		s.logger.Info("starting roster reporter",
			"next_run", s.cronTrigger.NextRun(),
		)
		s.cronTrigger.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server", "addr", s.addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerRoutes(mux *http.ServeMux) {
	activitiesHandler := handlers.NewActivitiesHandler(s.registry)
	signupHandler := handlers.NewSignupHandler(s.logger, s.registry, s.metrics)
	unregisterHandler := handlers.NewUnregisterHandler(s.logger, s.registry, s.metrics)

	// API endpoints
	mux.HandleFunc("GET /health", handlers.HandleHealth)
	mux.Handle("GET /activities", activitiesHandler)
	mux.Handle("POST /activities/{activity}/signup", signupHandler)
	mux.Handle("DELETE /activities/{activity}/unregister", unregisterHandler)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.metrics.Registry(), promhttp.HandlerOpts{}))

	// Static files (web UI), with the root redirecting to the index page
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		s.logger.Error("failed to create static file system", "error", err)
		return
	}
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/static/index.html", http.StatusTemporaryRedirect)
	})
}
