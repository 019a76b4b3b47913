// Package server wires the HTTP routes: the Connect services, the save
// server endpoints, metrics, health and the static frontend.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/groceries/internal/storage"
)

// ShutdownTimeout bounds how long Stop waits for in-flight requests.
var ShutdownTimeout = 5 * time.Second

// Server bundles the router and the listener.
type Server struct {
	Addr   string
	ln     net.Listener
	server *http.Server
	router *chi.Mux

	logger    *slog.Logger
	staticDir string
	saveStore storage.Store
	metrics   http.Handler
	services  map[string]http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithService mounts a Connect handler under its service path.
func WithService(path string, handler http.Handler) Option {
	return func(s *Server) {
		s.services[path] = handler
	}
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStatic serves the frontend from dir. Unknown paths get index.html.
func WithStatic(dir string) Option {
	return func(s *Server) {
		s.staticDir = dir
	}
}

// WithSaveStore enables POST /api/save, writing the unowned items document
// of store. Pair it with service.WithSeedStore on the same store.
func WithSaveStore(store storage.Store) Option {
	return func(s *Server) {
		s.saveStore = store
	}
}

// WithMetrics exposes handler on /metrics.
func WithMetrics(handler http.Handler) Option {
	return func(s *Server) {
		s.metrics = handler
	}
}

// New creates a server listening on addr once started.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		Addr:     addr,
		router:   chi.NewRouter(),
		logger:   slog.Default(),
		services: make(map[string]http.Handler),
		server: &http.Server{
			MaxHeaderBytes:    1 << 20,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(requestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors)

	s.router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleSaveHealth)
		if s.saveStore != nil {
			r.Post("/save", s.handleSave)
		}
	})

	if s.metrics != nil {
		s.router.Handle("/metrics", s.metrics)
	}

	for path, handler := range s.services {
		s.router.Handle(path+"*", handler)
		slog.Info("Service mounted", "path", path)
	}

	if s.staticDir != "" {
		s.router.Get("/*", s.handleStatic)
	}

	// Connect needs HTTP/2 without TLS.
	s.server.Handler = h2c.NewHandler(s.router, &http2.Server{})
	return s
}

// Handler returns the routed handler without the h2c wrapper.
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleStatic serves files from the static directory, falling back to
// index.html for paths that do not exist.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	urlPath := r.URL.Path
	if urlPath == "/" {
		urlPath = "/index.html"
	}

	filePath := filepath.Join(s.staticDir, filepath.Clean("/"+urlPath))
	if info, err := os.Stat(filePath); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(s.staticDir, "index.html"))
		return
	}
	http.ServeFile(w, r, filePath)
}

// cors adds CORS headers for browser access.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	var err error
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	slog.Info("Server starting", "address", s.ln.Addr().String())
	go s.server.Serve(s.ln)
	return nil
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.ln == nil {
		return fmt.Errorf("HTTP server has not been started or is already stopped")
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}
	s.ln = nil
	return nil
}
