package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/haguru/mongolens/internal/interfaces"
)

var (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 30 * time.Second
	IdleTimeout  = 60 * time.Second
)

type Server struct {
	Port        string
	Host        string
	server      *http.Server
	mux         *http.ServeMux
	middlewares []func(http.Handler) http.Handler
	Logger      interfaces.Logger
}

// NewServer creates a new Server instance with the specified host and port.
func NewServer(host, port string, logger interfaces.Logger) interfaces.Server {
	mux := http.NewServeMux()
	server := &http.Server{
		Addr:         host + ":" + port,
		Handler:      mux,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	return &Server{
		Host:   host,
		Port:   port,
		server: server,
		mux:    mux,
		Logger: logger,
	}
}

// AddRoute registers handler for route.
func (s *Server) AddRoute(route string, handler func(w http.ResponseWriter, r *http.Request)) error {
	if handler == nil {
		return fmt.Errorf("nil handler for route %s", route)
	}
	return s.Handle(route, http.HandlerFunc(handler))
}

// Handle registers an http.Handler for route.
func (s *Server) Handle(route string, handler http.Handler) error {
	if route == "" {
		return errors.New("route is empty")
	}
	s.mux.Handle(route, handler)
	s.Logger.Info("Route added", "route", route)
	return nil
}

// Use wraps every route in middlewares, the first being the outermost.
func (s *Server) Use(middlewares ...func(http.Handler) http.Handler) {
	s.middlewares = append(s.middlewares, middlewares...)

	var h http.Handler = s.mux
	for i := len(s.middlewares) - 1; i >= 0; i-- {
		h = s.middlewares[i](h)
	}
	s.server.Handler = h
}

// Handler returns the root handler including middlewares.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ListenAndServe starts the HTTP server and blocks until it stops.
// A graceful Shutdown is not reported as an error.
func (s *Server) ListenAndServe() error {
	s.Logger.Info("Starting server", "host", s.Host, "port", s.Port)
	err := s.server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.Logger.Error("Failed to start server", "error", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown stops accepting connections and waits for active requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Logger.Info("Shutting down server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
