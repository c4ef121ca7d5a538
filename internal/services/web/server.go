package web

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/louisbranch/festival/internal/platform/timeouts"
)

// Server hosts the festival site and admin portal on one listener.
type Server struct {
	addr   string
	http   *http.Server
	store  io.Closer
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
}

// NewServer builds a server around NewHandler. The server owns config.Store
// and releases it in Close.
func NewServer(config Config) (*Server, error) {
	addr := strings.TrimSpace(config.HTTPAddr)
	if addr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(config)
	if err != nil {
		return nil, fmt.Errorf("build handler: %w", err)
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	var store io.Closer
	if config.Store != nil {
		store = config.Store
	}
	return &Server{
		addr:   addr,
		store:  store,
		logger: logger,
		http: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			IdleTimeout:       timeouts.Idle,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
	}, nil
}

// Addr returns the bound address once serving, or the configured one.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// ListenAndServe serves until ctx ends, then drains in-flight requests for
// at most timeouts.Shutdown.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil || s.http == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()
	s.logger.Info("festival web listening", slog.String("addr", listener.Addr().String()))

	serveErr := make(chan error, 1)
	go func() { serveErr <- s.http.Serve(listener) }()

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.Shutdown)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	s.logger.Info("festival web stopped")
	return nil
}

// Close releases the store.
func (s *Server) Close() {
	if s == nil || s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("close festival store", slog.Any("error", err))
	}
}
