package sentiment

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pscheid92/huella/internal/domain"
)

var fenceStripper = strings.NewReplacer("```json\n", "", "```json", "", "```\n", "", "```", "")

type remoteVerdict struct {
	Score     *float64 `json:"score"`
	Sentiment string   `json:"sentiment"`
	Emotions  []string `json:"emotions"`
}

// ParseResponse converts the model's raw answer into a result. Markdown code fences are
// removed first. The score is clamped, a neutral label is overridden when the score leaves
// the neutral band, an unknown label is derived from the score, and emotion tags outside
// the vocabulary are dropped.
func ParseResponse(raw string) (domain.SentimentResult, error) {
	cleaned := strings.TrimSpace(fenceStripper.Replace(raw))
	if cleaned == "" {
		return domain.SentimentResult{}, domain.ErrEmptyResponse
	}

	var verdict remoteVerdict
	if err := json.Unmarshal([]byte(cleaned), &verdict); err != nil {
		return domain.SentimentResult{}, fmt.Errorf("%w: %w", domain.ErrUnparsableAnalyze, err)
	}
	if verdict.Score == nil {
		return domain.SentimentResult{}, fmt.Errorf("%w: missing score", domain.ErrUnparsableAnalyze)
	}

	score := clamp(*verdict.Score)

	label, ok := domain.ParseLabel(strings.ToLower(strings.TrimSpace(verdict.Sentiment)))
	switch {
	case !ok:
		label = labelForScore(score)
	case label == domain.LabelNeutral && score > neutralBand:
		label = domain.LabelPositive
	case label == domain.LabelNeutral && score < -neutralBand:
		label = domain.LabelNegative
	}

	emotions := make([]domain.Emotion, 0, domain.MaxEmotions)
	for _, tag := range verdict.Emotions {
		if len(emotions) == domain.MaxEmotions {
			break
		}
		if e, ok := domain.ParseEmotion(strings.ToLower(strings.TrimSpace(tag))); ok {
			emotions = append(emotions, e)
		}
	}

	return domain.SentimentResult{
		Score:    score,
		Label:    label,
		Emotions: emotions,
		Source:   domain.SourceRemote,
	}, nil
}
