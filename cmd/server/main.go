package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/huella/internal/adapter/filestore"
	"github.com/pscheid92/huella/internal/adapter/gemini"
	"github.com/pscheid92/huella/internal/adapter/httpserver"
	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/adapter/redis"
	"github.com/pscheid92/huella/internal/adapter/sheets"
	"github.com/pscheid92/huella/internal/app"
	"github.com/pscheid92/huella/internal/delivery"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/config"
	"github.com/pscheid92/huella/internal/platform/logging"
	"github.com/pscheid92/huella/internal/platform/tracing"
	"github.com/pscheid92/huella/internal/platform/version"
	"github.com/pscheid92/huella/internal/sentiment"
	goredis "github.com/redis/go-redis/v9"
)

const shutdownTimeout = 10 * time.Second

func runGracefulShutdown(srv *httpserver.Server, stopQueue context.CancelFunc, queueDone <-chan struct{}) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		stopQueue()
		select {
		case <-queueDone:
		case <-shutdownCtx.Done():
			slog.Warn("Delivery loop did not stop in time")
		}

		close(done)
	}()

	return done
}

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

// setupQueueStore returns the slot backend and, for Redis, a readiness check and a closer.
func setupQueueStore(ctx context.Context, cfg *config.Config, reg prometheus.Registerer) (domain.QueueStore, []httpserver.HealthCheck, func()) {
	switch cfg.QueueStore {
	case config.QueueStoreFile:
		slog.Info("Queue slot on disk", "path", cfg.QueueFile)
		return filestore.New(cfg.QueueFile), nil, func() {}

	case config.QueueStoreRedis:
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		client, err := redis.NewClient(connectCtx, cfg.RedisURL, metrics.NewRedisMetrics(reg))
		if err != nil {
			slog.Error("Failed to connect to Redis", "error", err)
			os.Exit(1)
		}
		checks := []httpserver.HealthCheck{{Name: "redis", Check: pingCheck(client)}}
		return redis.NewQueueStore(client, cfg.QueueKey), checks, func() { _ = client.Close() }

	default:
		slog.Warn("Queue slot is in memory; pending records are lost on restart")
		return delivery.NewMemoryStore(), nil, func() {}
	}
}

func pingCheck(client *goredis.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	}
}

// setupSender returns nil without an endpoint, which puts the queue in drain mode.
func setupSender(cfg *config.Config) domain.Sender {
	if cfg.SheetsEndpointURL == "" {
		slog.Warn("SHEETS_ENDPOINT_URL not set; queued records will be discarded")
		return nil
	}
	return sheets.NewSender(cfg.SheetsEndpointURL, cfg.DeliveryRequireAck, cfg.DeliveryTimeout)
}

func setupAnalyzer(ctx context.Context, cfg *config.Config, m *metrics.SentimentMetrics) domain.Analyzer {
	opts := sentiment.Options{Timeout: cfg.AnalyzeTimeout, Metrics: m}
	if cfg.GeminiAPIKey == "" {
		slog.Info("GEMINI_API_KEY not set; using local sentiment heuristic only")
		return sentiment.NewAnalyzer(nil, opts)
	}

	gen, err := gemini.NewGenerator(ctx, gemini.Config{APIKey: cfg.GeminiAPIKey, Model: cfg.GeminiModel})
	if err != nil {
		slog.Error("Failed to create Gemini client, using local heuristic", "error", err)
		return sentiment.NewAnalyzer(nil, opts)
	}
	return sentiment.NewAnalyzer(gen, opts)
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	// Initialize structured logging
	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "version", version.Get().String(), "env", cfg.AppEnv, "port", cfg.Port)

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, tracing.Config{
		Endpoint:    cfg.TracingEndpoint,
		Environment: cfg.AppEnv,
		Insecure:    cfg.TracingInsecure,
	})
	if err != nil {
		slog.Error("Failed to initialise tracing", "error", err)
		os.Exit(1)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	reg := metrics.NewRegistry()

	store, healthChecks, closeStore := setupQueueStore(ctx, cfg, reg)
	defer closeStore()

	queue := delivery.New(ctx, store, setupSender(cfg), delivery.Options{
		Interval:   cfg.QueueInterval,
		MaxRetries: cfg.QueueMaxRetries,
		Clock:      clock,
		Metrics:    metrics.NewDeliveryMetrics(reg),
	})

	queueCtx, stopQueue := context.WithCancel(ctx)
	queueDone := make(chan struct{})
	go func() {
		defer close(queueDone)
		queue.Run(queueCtx)
	}()

	analyzer := setupAnalyzer(ctx, cfg, metrics.NewSentimentMetrics(reg))
	appSvc := app.NewService(queue, analyzer, clock)

	srv := httpserver.NewServer(cfg, appSvc, reg, metrics.NewHTTPMetrics(reg), healthChecks)

	done := runGracefulShutdown(srv, stopQueue, queueDone)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
}
