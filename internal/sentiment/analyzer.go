package sentiment

import (
	"context"
	"time"

	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"golang.org/x/sync/errgroup"
)

// improvementThreshold is the score change a comparison must exceed to count as improved.
const improvementThreshold = 0.1

// Options configures NewAnalyzer.
type Options struct {
	Timeout time.Duration
	Metrics *metrics.SentimentMetrics
}

// NewAnalyzer returns a remote analyzer backed by gen with a local fallback, or the local
// analyzer alone when gen is nil.
func NewAnalyzer(gen Generator, opts Options) domain.Analyzer {
	var analyzer domain.Analyzer = NewLocalAnalyzer()
	if gen != nil {
		analyzer = NewRemoteAnalyzer(gen, analyzer, opts.Timeout, opts.Metrics)
	}
	if opts.Metrics != nil {
		analyzer = &instrumented{next: analyzer, metrics: opts.Metrics}
	}
	return analyzer
}

// Compare analyzes both texts concurrently and reports the score change.
func Compare(ctx context.Context, analyzer domain.Analyzer, before, after string) domain.Comparison {
	var cmp domain.Comparison

	var g errgroup.Group
	g.Go(func() error {
		cmp.Before = analyzer.Analyze(ctx, before)
		return nil
	})
	g.Go(func() error {
		cmp.After = analyzer.Analyze(ctx, after)
		return nil
	})
	_ = g.Wait()

	cmp.Change = cmp.After.Score - cmp.Before.Score
	cmp.Improved = cmp.Change > improvementThreshold
	return cmp
}

type instrumented struct {
	next    domain.Analyzer
	metrics *metrics.SentimentMetrics
}

func (a *instrumented) Analyze(ctx context.Context, text string) domain.SentimentResult {
	start := time.Now()
	result := a.next.Analyze(ctx, text)

	source := string(result.Source)
	a.metrics.Analyses.WithLabelValues(source).Inc()
	a.metrics.AnalysisDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	return result
}
