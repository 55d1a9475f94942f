package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	minWriteTimeout = 10 * time.Second
	// A Starken quote chains token, localities and rating calls.
	maxSequentialUpstreamCalls = 3
	writeTimeoutSlack          = 5 * time.Second
)

type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

// New builds the HTTP server. upstreamTimeout bounds a single outbound call;
// the write timeout covers the longest chain of them a handler can make.
func New(port int, upstreamTimeout time.Duration, handler http.Handler, logger *zap.Logger) *Server {
	writeTimeout := WriteTimeout(upstreamTimeout)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       30 * time.Second,
		},
		logger: logger,
	}
}

func WriteTimeout(upstreamTimeout time.Duration) time.Duration {
	return max(minWriteTimeout, maxSequentialUpstreamCalls*upstreamTimeout+writeTimeoutSlack)
}

func (s *Server) Start() error {
	s.logger.Info("starting server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")
	return s.httpServer.Shutdown(ctx)
}
