package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/allisson/randtoken/internal/metrics"
)

// listener owns an http.Server with the timeouts shared by the API and metrics ports.
type listener struct {
	name   string
	server *http.Server
	logger *slog.Logger
}

func newListener(name, host string, port int, logger *slog.Logger) listener {
	return listener{
		name:   name,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// GetHandler returns the http.Handler for testing purposes.
func (l *listener) GetHandler() http.Handler {
	return l.server.Handler
}

// Start serves until Shutdown is called. A clean shutdown returns nil.
func (l *listener) Start(ctx context.Context) error {
	l.logger.Info("starting "+l.name, slog.String("addr", l.server.Addr))

	if err := l.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start %s: %w", l.name, err)
	}

	return nil
}

func (l *listener) shutdown(ctx context.Context) error {
	l.logger.Info("shutting down " + l.name)
	return l.server.Shutdown(ctx)
}

// MetricsServer serves /metrics on its own port so scrapes bypass the API middleware
// and rate limits.
type MetricsServer struct {
	listener
}

// NewMetricsServer creates a MetricsServer. A nil provider yields a server with no routes.
func NewMetricsServer(
	host string,
	port int,
	logger *slog.Logger,
	metricsProvider *metrics.Provider,
) *MetricsServer {
	router := gin.New()
	router.Use(gin.Recovery())

	if metricsProvider != nil {
		router.GET("/metrics", gin.WrapH(metricsProvider.Handler()))
	}

	s := &MetricsServer{listener: newListener("metrics server", host, port, logger)}
	s.server.Handler = router
	return s
}

// Shutdown gracefully shuts down the metrics server.
func (s *MetricsServer) Shutdown(ctx context.Context) error {
	return s.shutdown(ctx)
}
