package httpserver

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pscheid92/huella/internal/adapter/metrics"
	"github.com/pscheid92/huella/internal/domain"
	"github.com/pscheid92/huella/internal/platform/config"
)

// --- Mock implementations ---

type mockAppService struct {
	mu sync.Mutex

	submitPreFn  func(ctx context.Context, p domain.Participant, answers domain.SurveyAnswers) (domain.QueueItem, error)
	submitPostFn func(ctx context.Context, p domain.Participant, pre, post domain.SurveyAnswers) (domain.QueueItem, error)
	clearFn      func(ctx context.Context) error

	items       []domain.QueueItem
	analyzed    []string
	huellaCalls int
}

func (m *mockAppService) SubmitPreSurvey(ctx context.Context, p domain.Participant, answers domain.SurveyAnswers) (domain.QueueItem, error) {
	if m.submitPreFn != nil {
		return m.submitPreFn(ctx, p, answers)
	}
	return m.enqueue(domain.Payload{"userId": p.UserID, "type": "pre-survey"}), nil
}

func (m *mockAppService) SubmitPostSurvey(ctx context.Context, p domain.Participant, pre, post domain.SurveyAnswers) (domain.QueueItem, error) {
	if m.submitPostFn != nil {
		return m.submitPostFn(ctx, p, pre, post)
	}
	return m.enqueue(domain.Payload{"userId": p.UserID, "type": "post-survey"}), nil
}

func (m *mockAppService) BuildHuella(_ context.Context, pre, post domain.SurveyAnswers) domain.Huella {
	m.mu.Lock()
	m.huellaCalls++
	m.mu.Unlock()
	return domain.Huella{
		Scales: []domain.ScaleChange{{
			Question: domain.QuestionSociety,
			Before:   pre.Society,
			After:    post.Society,
			Change:   post.Society - pre.Society,
		}},
		EmotionPre:  pre.Emotion,
		EmotionPost: post.Emotion,
	}
}

func (m *mockAppService) Analyze(_ context.Context, text string) domain.SentimentResult {
	m.mu.Lock()
	m.analyzed = append(m.analyzed, text)
	m.mu.Unlock()
	return domain.SentimentResult{Score: 0.4, Label: domain.LabelPositive, Emotions: []domain.Emotion{domain.EmotionHope}, Source: domain.SourceLocal}
}

func (m *mockAppService) Compare(_ context.Context, _, _ string) domain.Comparison {
	return domain.Comparison{Change: 0.5, Improved: true}
}

func (m *mockAppService) QueueSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *mockAppService) QueueItems() []domain.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.QueueItem(nil), m.items...)
}

func (m *mockAppService) ClearQueue(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

func (m *mockAppService) enqueue(payload domain.Payload) domain.QueueItem {
	m.mu.Lock()
	defer m.mu.Unlock()
	item := domain.QueueItem{ID: "item-1", Payload: payload}
	m.items = append(m.items, item)
	return item
}

// --- Test server builder ---

type testServerOption func(*Server)

func withHealthChecks(checks ...HealthCheck) testServerOption {
	return func(s *Server) { s.healthChecks = checks }
}

const testAdminToken = "operator-secret"

func testConfig() *config.Config {
	return &config.Config{
		AppEnv:          "test",
		Port:            "0",
		SubmitRateLimit: 1000,
		AdminToken:      testAdminToken,
	}
}

func newTestServer(t *testing.T, app appService, opts ...testServerOption) *Server {
	t.Helper()
	reg := prometheus.NewRegistry()
	srv := NewServer(testConfig(), app, reg, metrics.NewHTTPMetrics(reg), nil)
	for _, opt := range opts {
		opt(srv)
	}
	return srv
}
