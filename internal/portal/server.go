// Package portal provides the base HTTP server, middleware chain and
// response helpers for the Kenzie customer portal.
package portal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Config holds the server settings resolved at startup.
type Config struct {
	Name    string // service name for logging
	Port    int
	Verbose bool
	// Output receives log lines; defaults to os.Stdout.
	Output io.Writer
}

// Server wraps a chi router with the common middleware stack and owns the
// process lifecycle.
type Server struct {
	Config  *Config
	Router  *chi.Mux
	Logger  *slog.Logger
	Metrics *Metrics
	mw      *Middleware
}

// New creates a Server with the common middleware mounted and /metrics
// exposed.
func New(cfg *Config) *Server {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: level}))

	r := chi.NewRouter()
	metrics := NewMetrics()
	mw := NewMiddleware(cfg, logger)

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(mw.CORS)
	r.Use(mw.RequestLog)
	r.Use(metrics.Instrument)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	return &Server{
		Config:  cfg,
		Router:  r,
		Logger:  logger,
		Metrics: metrics,
		mw:      mw,
	}
}

// Middleware returns the middleware instance, e.g. for the request log.
func (s *Server) Middleware() *Middleware {
	return s.mw
}

// Serve starts the HTTP server and blocks until SIGINT or SIGTERM, then
// shuts down gracefully.
func (s *Server) Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.ServeContext(ctx)
}

// ServeContext runs the server until ctx is done.
func (s *Server) ServeContext(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.Config.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("starting portal", "name", s.Config.Name, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listening on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down portal", "name", s.Config.Name)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// ServeHTTP implements http.Handler so the Server can be used directly in tests.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

// Error writes a JSON error response of the form {"error": message}.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
