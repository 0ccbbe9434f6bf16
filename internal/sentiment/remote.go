package sentiment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/tracing"
	"github.com/sony/gobreaker"
)

const (
	DefaultTimeout = 10 * time.Second

	breakerFailures = 3
	breakerCooldown = 30 * time.Second
)

// Generator produces a text completion for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// RemoteAnalyzer delegates to a generative model and falls back to another analyzer
// whenever the model cannot produce a usable verdict.
type RemoteAnalyzer struct {
	gen      Generator
	fallback domain.Analyzer
	timeout  time.Duration
	breaker  *gobreaker.CircuitBreaker
	metrics  *metrics.SentimentMetrics
}

func NewRemoteAnalyzer(gen Generator, fallback domain.Analyzer, timeout time.Duration, m *metrics.SentimentMetrics) *RemoteAnalyzer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "sentiment-remote",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "component", name, "from", from.String(), "to", to.String())
		},
	})

	return &RemoteAnalyzer{
		gen:      gen,
		fallback: fallback,
		timeout:  timeout,
		breaker:  breaker,
		metrics:  m,
	}
}

func (a *RemoteAnalyzer) Analyze(ctx context.Context, text string) domain.SentimentResult {
	if isBlank(text) {
		return blankResult()
	}

	result, err := a.analyzeRemote(ctx, text)
	if err != nil {
		reason := fallbackReason(err)
		slog.WarnContext(ctx, "Sentiment: remote analysis failed, using local heuristic", "reason", reason, "error", err)
		if a.metrics != nil {
			a.metrics.Fallbacks.WithLabelValues(reason).Inc()
		}
		return a.fallback.Analyze(ctx, text)
	}
	return result
}

func (a *RemoteAnalyzer) analyzeRemote(ctx context.Context, text string) (result domain.SentimentResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "sentiment.remote")
	defer func() { tracing.End(span, err) }()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	out, err := a.breaker.Execute(func() (interface{}, error) {
		return a.gen.Generate(callCtx, BuildPrompt(text))
	})
	if err != nil {
		return domain.SentimentResult{}, fmt.Errorf("remote generate failed: %w", err)
	}

	raw, _ := out.(string)
	return ParseResponse(raw)
}

func fallbackReason(err error) string {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "breaker_open"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, domain.ErrEmptyResponse), errors.Is(err, domain.ErrUnparsableAnalyze):
		return "unparsable"
	default:
		return "error"
	}
}
