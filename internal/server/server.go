// Package server exposes the shell over HTTP: one endpoint that executes
// a command line for a session, a health probe, and optional Prometheus
// exposition.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/math-u-t/Drive-CLI/internal/logger"
	"github.com/math-u-t/Drive-CLI/pkg/metrics"
	"github.com/math-u-t/Drive-CLI/pkg/shell"
	"github.com/math-u-t/Drive-CLI/pkg/store/content"
	"github.com/math-u-t/Drive-CLI/pkg/store/drive"
)

// sessionHeader carries the terminal session identifier. Clients without
// one share the default session.
const sessionHeader = "X-Session-ID"

const defaultSession = "default"

// Options configures the HTTP server.
type Options struct {
	// ListenAddr is the bind address, e.g. ":8080".
	ListenAddr string

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MetricsEnabled mounts GET /metrics backed by the global registry.
	MetricsEnabled bool
}

// Server runs the HTTP transport in front of a shell.
type Server struct {
	shell      *shell.Shell
	drive      drive.Store
	content    content.Store
	httpServer *http.Server
	opts       Options
}

// New wires the routes and returns a server ready to Run.
func New(sh *shell.Shell, driveStore drive.Store, contentStore content.Store, opts Options) *Server {
	s := &Server{
		shell:   sh,
		drive:   driveStore,
		content: contentStore,
		opts:    opts,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.POST("/api/command", s.handleCommand)
	router.GET("/healthz", s.handleHealth)
	if opts.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(
			metrics.GetRegistry(),
			promhttp.HandlerOpts{},
		)))
	}

	s.httpServer = &http.Server{
		Addr:              opts.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the context is cancelled, then shuts down gracefully
// within the configured timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening on %s", s.opts.ListenAddr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	return nil
}

type commandRequest struct {
	Command string `json:"command" binding:"required"`
}

func (s *Server) handleCommand(c *gin.Context) {
	var req commandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "command is required"})
		return
	}

	sessionID := c.GetHeader(sessionHeader)
	if sessionID == "" {
		sessionID = defaultSession
	}

	result := s.shell.Execute(c.Request.Context(), sessionID, req.Command)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleHealth(c *gin.Context) {
	ctx := c.Request.Context()
	if err := s.drive.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	if err := s.content.HealthCheck(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
