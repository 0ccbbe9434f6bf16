// Package redis stores the delivery queue slot in Redis.
package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/platform/retry"
	goredis "github.com/redis/go-redis/v9"
)

var connectPolicy = retry.Policy{
	MaxAttempts:    5,
	InitialBackoff: 500 * time.Millisecond,
	MaxBackoff:     5 * time.Second,
	OnRetry: func(attempt int, err error, backoff time.Duration) {
		slog.Warn("Redis not reachable, retrying", "attempt", attempt, "backoff", backoff, "error", err)
	},
}

// NewClient parses redisURL, installs the metrics and circuit breaker hooks and waits
// until the server answers a PING. m may be nil.
func NewClient(ctx context.Context, redisURL string, m *metrics.RedisMetrics) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if m != nil {
		rdb.AddHook(&metricsHook{m: m})
	}
	rdb.AddHook(newBreakerHook(m))

	err = retry.DoVoid(ctx, connectPolicy, retry.AlwaysRetry, func() error {
		return rdb.Ping(ctx).Err()
	})
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	slog.Info("Connected to Redis", "addr", opts.Addr, "db", opts.DB)
	return rdb, nil
}
