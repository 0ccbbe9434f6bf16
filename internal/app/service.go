package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/huella/internal/domain"
	apperrors "github.com/pscheid92/huella/internal/platform/errors"
	"github.com/pscheid92/huella/internal/sentiment"
	"golang.org/x/sync/singleflight"
)

// isoMillis matches the timestamp format the collection sheet already stores.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Queue is the subset of the delivery queue the service needs.
type Queue interface {
	Enqueue(ctx context.Context, payload domain.Payload) (domain.QueueItem, error)
	Size() int
	Items() []domain.QueueItem
	Clear(ctx context.Context) error
}

// Service is the application layer. It is constructed once in main and shared by all handlers.
type Service struct {
	queue    Queue
	analyzer domain.Analyzer
	clock    clockwork.Clock
	analyses singleflight.Group
}

func NewService(queue Queue, analyzer domain.Analyzer, clock clockwork.Clock) *Service {
	return &Service{
		queue:    queue,
		analyzer: analyzer,
		clock:    clock,
	}
}

// SubmitPreSurvey validates the first round and queues it for delivery.
// A participant without an ID gets a generated one, reported back in the payload.
func (s *Service) SubmitPreSurvey(ctx context.Context, p domain.Participant, answers domain.SurveyAnswers) (domain.QueueItem, error) {
	if err := ValidateRound(answers, RoundPre); err != nil {
		return domain.QueueItem{}, err
	}

	p = s.ensureUserID(p)
	payload := domain.Payload{
		"timestamp": s.timestamp(),
		"userId":    p.UserID,
		"type":      string(domain.SurveyPre),
	}
	for k, v := range answersPayload(answers) {
		payload[k] = v
	}

	return s.enqueue(ctx, domain.SurveyPre, payload)
}

// SubmitPostSurvey validates both rounds and queues the combined record.
func (s *Service) SubmitPostSurvey(ctx context.Context, p domain.Participant, pre, post domain.SurveyAnswers) (domain.QueueItem, error) {
	if err := ValidateRound(pre, RoundPre); err != nil {
		return domain.QueueItem{}, err
	}
	if err := ValidateRound(post, RoundPost); err != nil {
		return domain.QueueItem{}, err
	}

	p = s.ensureUserID(p)
	payload := domain.Payload{
		"timestamp":  s.timestamp(),
		"userId":     p.UserID,
		"type":       string(domain.SurveyPost),
		"preSurvey":  answersPayload(pre),
		"postSurvey": answersPayload(post),
		"hasEmail":   strings.TrimSpace(p.Email) != "",
	}

	return s.enqueue(ctx, domain.SurveyPost, payload)
}

// Analyze classifies one text. Concurrent requests for the same text share one analysis,
// which is detached from the first caller's cancellation and bounded by the analyzer timeout.
func (s *Service) Analyze(ctx context.Context, text string) domain.SentimentResult {
	v, _, _ := s.analyses.Do(text, func() (any, error) {
		return s.analyzer.Analyze(context.WithoutCancel(ctx), text), nil
	})
	return v.(domain.SentimentResult)
}

func (s *Service) Compare(ctx context.Context, before, after string) domain.Comparison {
	return sentiment.Compare(ctx, s, before, after)
}

func (s *Service) QueueSize() int {
	return s.queue.Size()
}

func (s *Service) QueueItems() []domain.QueueItem {
	return s.queue.Items()
}

func (s *Service) ClearQueue(ctx context.Context) error {
	if err := s.queue.Clear(ctx); err != nil {
		return apperrors.InternalError("failed to clear queue", err)
	}
	slog.InfoContext(ctx, "Queue cleared by operator")
	return nil
}

// enqueue accepts the record even if the slot write fails: the item is held in memory and
// the slot is rewritten on the next mutation.
func (s *Service) enqueue(ctx context.Context, kind domain.SurveyKind, payload domain.Payload) (domain.QueueItem, error) {
	item, err := s.queue.Enqueue(ctx, payload)
	if err != nil {
		slog.WarnContext(ctx, "Survey queued without durable copy", "type", kind, "item_id", item.ID, "error", err)
	}
	slog.InfoContext(ctx, "Survey queued", "type", kind, "item_id", item.ID, "user_id", payload["userId"])
	return item, nil
}

func (s *Service) ensureUserID(p domain.Participant) domain.Participant {
	if strings.TrimSpace(p.UserID) == "" {
		p.UserID = NewUserID(s.clock)
	}
	return p
}

func (s *Service) timestamp() string {
	return s.clock.Now().UTC().Format(isoMillis)
}

// NewUserID returns an ID of the form user_<unix millis>_<9 random hex chars>.
func NewUserID(clock clockwork.Clock) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("user_%d_%s", clock.Now().UnixMilli(), suffix)
}

func answersPayload(a domain.SurveyAnswers) map[string]any {
	return map[string]any{
		domain.QuestionSociety:     a.Society,
		domain.QuestionPreparation: a.Preparation,
		domain.QuestionHealth:      a.Health,
		domain.QuestionEducation:   a.Education,
		domain.QuestionArt:         a.Art,
		"esperanza_text":           strings.TrimSpace(a.HopeText),
		"preocupacion_text":        strings.TrimSpace(a.WorryText),
		"emocion":                  a.Emotion,
	}
}
