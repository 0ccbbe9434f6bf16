package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.SheetsEndpointURL)
	assert.False(t, cfg.DeliveryRequireAck)
	assert.Equal(t, 15*time.Second, cfg.DeliveryTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.QueueInterval)
	assert.Equal(t, 5, cfg.QueueMaxRetries)
	assert.Equal(t, QueueStoreMemory, cfg.QueueStore)
	assert.Equal(t, "huellaIA_dataQueue", cfg.QueueKey)
	assert.Equal(t, "data/queue.json", cfg.QueueFile)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, "gemini-2.0-flash", cfg.GeminiModel)
	assert.Equal(t, 10*time.Second, cfg.AnalyzeTimeout)
	assert.Equal(t, 2.0, cfg.SubmitRateLimit)
	assert.Empty(t, cfg.TracingEndpoint)
	assert.True(t, cfg.TracingInsecure)
	assert.Empty(t, cfg.AdminToken)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SHEETS_ENDPOINT_URL", "https://script.google.com/macros/s/abc/exec")
	t.Setenv("DELIVERY_REQUIRE_ACK", "true")
	t.Setenv("QUEUE_INTERVAL", "3s")
	t.Setenv("QUEUE_MAX_RETRIES", "8")
	t.Setenv("QUEUE_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/1")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "https://script.google.com/macros/s/abc/exec", cfg.SheetsEndpointURL)
	assert.True(t, cfg.DeliveryRequireAck)
	assert.Equal(t, 3*time.Second, cfg.QueueInterval)
	assert.Equal(t, 8, cfg.QueueMaxRetries)
	assert.Equal(t, QueueStoreRedis, cfg.QueueStore)
	assert.Equal(t, "redis://localhost:6379/1", cfg.RedisURL)
	assert.Equal(t, "key", cfg.GeminiAPIKey)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"redis store without url", map[string]string{"QUEUE_STORE": "redis"}, "REDIS_URL is required when QUEUE_STORE is redis"},
		{"unknown store", map[string]string{"QUEUE_STORE": "s3"}, `QUEUE_STORE must be one of memory, file, redis, got "s3"`},
		{"file store without path", map[string]string{"QUEUE_STORE": "file", "QUEUE_FILE": ""}, "QUEUE_FILE is required when QUEUE_STORE is file"},
		{"relative endpoint", map[string]string{"SHEETS_ENDPOINT_URL": "/exec"}, "SHEETS_ENDPOINT_URL must be an absolute http(s) URL"},
		{"non-http endpoint", map[string]string{"SHEETS_ENDPOINT_URL": "ftp://example.com"}, "SHEETS_ENDPOINT_URL must be an absolute http(s) URL"},
		{"zero retries", map[string]string{"QUEUE_MAX_RETRIES": "0"}, "QUEUE_MAX_RETRIES must be at least 1"},
		{"zero interval", map[string]string{"QUEUE_INTERVAL": "0s"}, "QUEUE_INTERVAL must be positive"},
		{"zero delivery timeout", map[string]string{"DELIVERY_TIMEOUT": "0s"}, "DELIVERY_TIMEOUT must be positive"},
		{"zero analyze timeout", map[string]string{"ANALYZE_TIMEOUT": "0s"}, "ANALYZE_TIMEOUT must be positive"},
		{"zero rate limit", map[string]string{"SUBMIT_RATE_LIMIT": "0"}, "SUBMIT_RATE_LIMIT must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MalformedDuration(t *testing.T) {
	t.Setenv("QUEUE_INTERVAL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load environment variables")
}

func TestLoad_MissingOptionalsAreNotErrors(t *testing.T) {
	t.Setenv("SHEETS_ENDPOINT_URL", "")
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.SheetsEndpointURL)
	assert.Empty(t, cfg.GeminiAPIKey)
}
