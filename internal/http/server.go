// Package http provides the HTTP servers of the token service: the public API router
// with its middleware stack and the Prometheus metrics listener.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/randtoken/internal/config"
	"github.com/allisson/randtoken/internal/metrics"
	"github.com/allisson/randtoken/internal/token/domain"
	tokenHTTP "github.com/allisson/randtoken/internal/token/http"
	"github.com/allisson/randtoken/internal/token/service"
)

// Server represents the HTTP API server.
type Server struct {
	listener
	source       service.EntropySource
	shuttingDown atomic.Bool
}

// NewServer creates a new HTTP server. source is probed by the readiness endpoint.
func NewServer(
	source service.EntropySource,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		listener: newListener("http server", host, port, logger),
		source:   source,
	}
}

// SetupRouter builds the gin engine with middleware and routes. ctx bounds background
// work started by middleware, such as rate limiter cleanup.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	tokenHandler *tokenHTTP.TokenHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), metricsProvider.Namespace()))
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		tokens := v1.Group("/tokens")
		if cfg.RateLimitEnabled {
			tokens.Use(RateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
		}
		tokens.POST("", tokenHandler.GenerateHandler)
		tokens.POST("/describe", tokenHandler.DescribeHandler)
		tokens.POST("/validate", tokenHandler.ValidateHandler)
		tokens.POST("/verify", tokenHandler.VerifyHandler)

		v1.GET("/presets", tokenHandler.ListPresetsHandler)
		v1.GET("/presets/:name", tokenHandler.GetPresetHandler)
	}

	s.server.Handler = router
}

// Shutdown marks the server as not ready and gracefully shuts it down.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shuttingDown.Store(true)
	return s.shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready once the entropy source can fill a block and the
// server is not shutting down.
func (s *Server) readinessHandler(c *gin.Context) {
	entropy := "ok"
	if s.source == nil || s.source.Fill(make([]byte, domain.BlockSize)) != nil {
		entropy = "error"
	}

	if entropy != "ok" || s.shuttingDown.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"entropy": entropy},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"entropy": entropy},
	})
}
