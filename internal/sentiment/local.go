package sentiment

import (
	"context"
	"math"
	"slices"
	"strings"

	"github.com/pscheid92/huella/internal/domain"
)

const (
	// neutralBand is the dead zone around zero in which a score is labelled neutral.
	neutralBand = 0.05

	lexiconScale = 10.0

	// Scores assigned when a text is lexically neutral but carries a hope or worry keyword.
	hopeScore  = 0.4
	worryScore = -0.4
)

// LocalAnalyzer scores text with a word lexicon and keyword families. It never fails and
// never leaves the process.
type LocalAnalyzer struct {
	lexicon Lexicon
}

func NewLocalAnalyzer() *LocalAnalyzer {
	return &LocalAnalyzer{lexicon: DefaultLexicon()}
}

// NewLocalAnalyzerWithLexicon uses a caller-provided word list.
func NewLocalAnalyzerWithLexicon(lex Lexicon) *LocalAnalyzer {
	return &LocalAnalyzer{lexicon: lex}
}

func (a *LocalAnalyzer) Analyze(_ context.Context, text string) domain.SentimentResult {
	if isBlank(text) {
		return blankResult()
	}

	score := clamp(float64(a.lexicon.Score(text)) / lexiconScale)
	label := labelForScore(score)
	emotions := MatchEmotions(text)

	if inNeutralBand(score) {
		if slices.Contains(emotions, domain.EmotionHope) {
			score, label = hopeScore, domain.LabelPositive
		}
		// Worry is applied last so it wins when both families matched.
		if slices.Contains(emotions, domain.EmotionWorry) {
			score, label = worryScore, domain.LabelNegative
		}
	}

	if len(emotions) > domain.MaxEmotions {
		emotions = emotions[:domain.MaxEmotions]
	}

	return domain.SentimentResult{
		Score:    score,
		Label:    label,
		Emotions: emotions,
		Source:   domain.SourceLocal,
	}
}

func isBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

func blankResult() domain.SentimentResult {
	return domain.SentimentResult{
		Score:    0,
		Label:    domain.LabelNeutral,
		Emotions: []domain.Emotion{},
		Source:   domain.SourceLocal,
	}
}

func clamp(score float64) float64 {
	return math.Max(-1, math.Min(1, score))
}

func inNeutralBand(score float64) bool {
	return score >= -neutralBand && score <= neutralBand
}

func labelForScore(score float64) domain.Label {
	switch {
	case score > neutralBand:
		return domain.LabelPositive
	case score < -neutralBand:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}
