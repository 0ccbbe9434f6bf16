package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

const (
	QueueStoreMemory = "memory"
	QueueStoreFile   = "file"
	QueueStoreRedis  = "redis"
)

type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	// Delivery. An empty endpoint puts the queue in drain mode.
	SheetsEndpointURL  string        `env:"SHEETS_ENDPOINT_URL"`
	DeliveryRequireAck bool          `env:"DELIVERY_REQUIRE_ACK" default:"false"`
	DeliveryTimeout    time.Duration `env:"DELIVERY_TIMEOUT" default:"15s"`
	QueueInterval      time.Duration `env:"QUEUE_INTERVAL" default:"1500ms"`
	QueueMaxRetries    int           `env:"QUEUE_MAX_RETRIES" default:"5"`
	QueueStore         string        `env:"QUEUE_STORE" default:"memory"`
	QueueKey           string        `env:"QUEUE_KEY" default:"huellaIA_dataQueue"`
	QueueFile          string        `env:"QUEUE_FILE" default:"data/queue.json"`
	RedisURL           string        `env:"REDIS_URL"`

	// Sentiment. An empty API key selects the local analyzer.
	GeminiAPIKey   string        `env:"GEMINI_API_KEY"`
	GeminiModel    string        `env:"GEMINI_MODEL" default:"gemini-2.0-flash"`
	AnalyzeTimeout time.Duration `env:"ANALYZE_TIMEOUT" default:"10s"`

	SubmitRateLimit float64 `env:"SUBMIT_RATE_LIMIT" default:"2"`

	// Operator token for the queue routes. Empty leaves them unregistered.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Tracing. host:port of an OTLP/HTTP collector; empty disables export.
	TracingEndpoint string `env:"TRACING_ENDPOINT"`
	TracingInsecure bool   `env:"TRACING_INSECURE" default:"true"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	switch cfg.QueueStore {
	case QueueStoreMemory, QueueStoreFile:
	case QueueStoreRedis:
		if cfg.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when QUEUE_STORE is %s", QueueStoreRedis)
		}
	default:
		return fmt.Errorf("QUEUE_STORE must be one of memory, file, redis, got %q", cfg.QueueStore)
	}

	if cfg.QueueStore == QueueStoreFile && cfg.QueueFile == "" {
		return fmt.Errorf("QUEUE_FILE is required when QUEUE_STORE is %s", QueueStoreFile)
	}

	if cfg.SheetsEndpointURL != "" {
		u, err := url.Parse(cfg.SheetsEndpointURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("SHEETS_ENDPOINT_URL must be an absolute http(s) URL, got %q", cfg.SheetsEndpointURL)
		}
	}

	if cfg.QueueMaxRetries < 1 {
		return fmt.Errorf("QUEUE_MAX_RETRIES must be at least 1, got %d", cfg.QueueMaxRetries)
	}
	if cfg.QueueInterval <= 0 {
		return fmt.Errorf("QUEUE_INTERVAL must be positive, got %s", cfg.QueueInterval)
	}
	if cfg.DeliveryTimeout <= 0 {
		return fmt.Errorf("DELIVERY_TIMEOUT must be positive, got %s", cfg.DeliveryTimeout)
	}
	if cfg.AnalyzeTimeout <= 0 {
		return fmt.Errorf("ANALYZE_TIMEOUT must be positive, got %s", cfg.AnalyzeTimeout)
	}
	if cfg.SubmitRateLimit <= 0 {
		return fmt.Errorf("SUBMIT_RATE_LIMIT must be positive, got %v", cfg.SubmitRateLimit)
	}

	return nil
}
