package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/huella/internal/platform/version"
	"golang.org/x/sync/errgroup"
)

const readinessProbeTimeout = 5 * time.Second

// HealthCheck is a named readiness check, for example a ping of the queue slot backend.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
}

// handleLiveness never touches dependencies; a stuck Redis must not get the process restarted.
func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status":     "ok",
		"uptime":     time.Since(s.startTime).Seconds(),
		"queue_size": s.app.QueueSize(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

// handleReadiness runs every check concurrently and reports each one by name.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessProbeTimeout)
	defer cancel()

	resp := readinessResponse{Status: "ready"}
	status := http.StatusOK

	if len(s.healthChecks) > 0 {
		var mu sync.Mutex
		resp.Checks = make(map[string]string, len(s.healthChecks))

		var g errgroup.Group
		for _, hc := range s.healthChecks {
			g.Go(func() error {
				result := "ok"
				if err := hc.Check(ctx); err != nil {
					result = err.Error()
				}
				mu.Lock()
				resp.Checks[hc.Name] = result
				mu.Unlock()
				return nil
			})
		}
		_ = g.Wait()

		for _, result := range resp.Checks {
			if result != "ok" {
				resp.Status = "unhealthy"
				status = http.StatusServiceUnavailable
			}
		}
	}

	if err := c.JSON(status, resp); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	if err := c.JSON(http.StatusOK, version.Get()); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
