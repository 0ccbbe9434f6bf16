package sentiment

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/stretchr/testify/assert"
)

type fixedAnalyzer map[string]float64

func (f fixedAnalyzer) Analyze(_ context.Context, text string) domain.SentimentResult {
	return domain.SentimentResult{Score: f[text], Label: labelForScore(f[text]), Source: domain.SourceLocal}
}

func TestNewAnalyzer_WithoutGeneratorIsLocal(t *testing.T) {
	a := NewAnalyzer(nil, Options{})

	_, ok := a.(*LocalAnalyzer)
	assert.True(t, ok)
}

func TestNewAnalyzer_WithGeneratorIsRemote(t *testing.T) {
	a := NewAnalyzer(&mockGenerator{}, Options{})

	_, ok := a.(*RemoteAnalyzer)
	assert.True(t, ok)
	assert.Equal(t, domain.SourceRemote, a.Analyze(context.Background(), "La IA es útil").Source)
}

func TestNewAnalyzer_RecordsAnalysesBySource(t *testing.T) {
	m := metrics.NewSentimentMetrics(prometheus.NewRegistry())
	a := NewAnalyzer(nil, Options{Metrics: m})

	a.Analyze(context.Background(), "Tengo mucha esperanza en la IA")
	a.Analyze(context.Background(), "Me preocupa mucho el riesgo")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Analyses.WithLabelValues("local")))
}

func TestCompare_Improved(t *testing.T) {
	a := fixedAnalyzer{"antes": -0.2, "despues": 0.3}

	cmp := Compare(context.Background(), a, "antes", "despues")

	assert.InDelta(t, 0.5, cmp.Change, 1e-9)
	assert.True(t, cmp.Improved)
	assert.Equal(t, -0.2, cmp.Before.Score)
	assert.Equal(t, 0.3, cmp.After.Score)
}

func TestCompare_ExactThresholdIsNotImproved(t *testing.T) {
	a := fixedAnalyzer{"antes": 0, "despues": 0.1}

	cmp := Compare(context.Background(), a, "antes", "despues")

	assert.Equal(t, 0.1, cmp.Change)
	assert.False(t, cmp.Improved)
}

func TestCompare_Worsened(t *testing.T) {
	cmp := Compare(context.Background(), NewLocalAnalyzer(), "Tengo mucha esperanza en la IA", "Me preocupa mucho el riesgo")

	assert.Less(t, cmp.Change, 0.0)
	assert.False(t, cmp.Improved)
}
