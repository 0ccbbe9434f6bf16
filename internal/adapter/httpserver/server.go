package httpserver

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/config"
)

// submitBurst is the per-IP burst on the submission routes.
const submitBurst = 5

type appService interface {
	SubmitPreSurvey(ctx context.Context, p domain.Participant, answers domain.SurveyAnswers) (domain.QueueItem, error)
	SubmitPostSurvey(ctx context.Context, p domain.Participant, pre, post domain.SurveyAnswers) (domain.QueueItem, error)
	BuildHuella(ctx context.Context, pre, post domain.SurveyAnswers) domain.Huella
	Analyze(ctx context.Context, text string) domain.SentimentResult
	Compare(ctx context.Context, before, after string) domain.Comparison
	QueueSize() int
	QueueItems() []domain.QueueItem
	ClearQueue(ctx context.Context) error
}

type Server struct {
	echo   *echo.Echo
	config *config.Config

	app          appService
	registry     *prometheus.Registry
	httpMetrics  *metrics.HTTPMetrics
	healthChecks []HealthCheck
	startTime    time.Time
}

// NewServer wires routes and middleware. registry and httpMetrics may be nil, in which case
// /metrics is not served and requests are not measured.
func NewServer(cfg *config.Config, app appService, registry *prometheus.Registry, httpMetrics *metrics.HTTPMetrics, healthChecks []HealthCheck) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{
		echo:         e,
		config:       cfg,
		app:          app,
		registry:     registry,
		httpMetrics:  httpMetrics,
		healthChecks: healthChecks,
		startTime:    time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	if err := s.echo.Start(":" + s.config.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}
