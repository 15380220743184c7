// Package httpserver exposes the operational sidecar: liveness and
// readiness probes plus the Prometheus scrape endpoint.
package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// storeHealthChecker is a minimal interface for database health checks.
type storeHealthChecker interface {
	PingContext(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	port      string
	store     storeHealthChecker
	startTime time.Time
}

func New(port string, store storeHealthChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	srv := &Server{
		echo:      e,
		port:      port,
		store:     store,
		startTime: time.Now(),
	}

	e.GET("/healthz", srv.handleLiveness)
	e.GET("/readyz", srv.handleReadiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return srv
}

func (s *Server) Start() error {
	return s.echo.Start(fmt.Sprintf(":%s", s.port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleLiveness(c echo.Context) error {
	uptime := time.Since(s.startTime).Seconds()
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": uptime,
	})
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := s.store.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "database",
			"error":        err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}
