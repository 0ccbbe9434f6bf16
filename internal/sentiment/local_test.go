package sentiment

import (
	"context"
	"testing"

	"github.com/pscheid92/huella/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalAnalyzer_BlankInput(t *testing.T) {
	a := NewLocalAnalyzer()

	for _, text := range []string{"", "   ", "\n\t"} {
		result := a.Analyze(context.Background(), text)
		assert.Equal(t, 0.0, result.Score)
		assert.Equal(t, domain.LabelNeutral, result.Label)
		assert.Empty(t, result.Emotions)
		assert.Equal(t, domain.SourceLocal, result.Source)
	}
}

func TestLocalAnalyzer_Hope(t *testing.T) {
	result := NewLocalAnalyzer().Analyze(context.Background(), "Tengo mucha esperanza en la IA")

	assert.Equal(t, domain.LabelPositive, result.Label)
	assert.Greater(t, result.Score, 0.0)
	assert.Contains(t, result.Emotions, domain.EmotionHope)
}

func TestLocalAnalyzer_Worry(t *testing.T) {
	result := NewLocalAnalyzer().Analyze(context.Background(), "Me preocupa mucho el riesgo")

	assert.Equal(t, domain.LabelNegative, result.Label)
	assert.Less(t, result.Score, 0.0)
	assert.Contains(t, result.Emotions, domain.EmotionWorry)
}

func TestLocalAnalyzer_ScoreIsLexiconSumOverTen(t *testing.T) {
	lex := Lexicon{"genial": 3, "util": 2}
	result := NewLocalAnalyzerWithLexicon(lex).Analyze(context.Background(), "genial y útil")

	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.Equal(t, domain.LabelPositive, result.Label)
}

func TestLocalAnalyzer_ScoreIsClamped(t *testing.T) {
	lex := Lexicon{"malo": -5}
	result := NewLocalAnalyzerWithLexicon(lex).Analyze(context.Background(), "malo malo malo")

	assert.Equal(t, -1.0, result.Score)
	assert.Equal(t, domain.LabelNegative, result.Label)
}

func TestLocalAnalyzer_NeutralHopeKeywordLiftsScore(t *testing.T) {
	// No lexicon words, only the "oportunid" stem.
	result := NewLocalAnalyzerWithLexicon(Lexicon{}).Analyze(context.Background(), "Veremos si es una oportunidad")

	assert.Equal(t, 0.4, result.Score)
	assert.Equal(t, domain.LabelPositive, result.Label)
}

func TestLocalAnalyzer_WorryWinsOverHopeInNeutralBand(t *testing.T) {
	result := NewLocalAnalyzerWithLexicon(Lexicon{}).Analyze(context.Background(), "Espero que no haya riesgo")

	assert.Equal(t, -0.4, result.Score)
	assert.Equal(t, domain.LabelNegative, result.Label)
	assert.Equal(t, []domain.Emotion{domain.EmotionHope, domain.EmotionWorry}, result.Emotions)
}

func TestLocalAnalyzer_KeywordsDoNotOverrideLexiconScore(t *testing.T) {
	lex := Lexicon{"riesgo": -3}
	result := NewLocalAnalyzerWithLexicon(lex).Analyze(context.Background(), "Espero que no sea un riesgo grande")

	// "no" negates the following word only when it is directly in front of it.
	assert.InDelta(t, -0.3, result.Score, 1e-9)
	assert.Equal(t, domain.LabelNegative, result.Label)
}

func TestLocalAnalyzer_EmotionsCappedAtThree(t *testing.T) {
	text := "Espero aprender, con miedo, curiosidad, entusiasmo y algo de ansiedad"
	result := NewLocalAnalyzer().Analyze(context.Background(), text)

	require.Len(t, result.Emotions, domain.MaxEmotions)
	assert.Equal(t, []domain.Emotion{domain.EmotionHope, domain.EmotionWorry, domain.EmotionCuriosity}, result.Emotions)
}

func TestLexicon_Negation(t *testing.T) {
	lex := Lexicon{"miedo": -2}

	assert.Equal(t, -2, lex.Score("tengo miedo"))
	assert.Equal(t, 2, lex.Score("no miedo"))
}

func TestLexicon_AccentFolding(t *testing.T) {
	lex, err := ParseLexicon("preocupacion\t-2\n")
	require.NoError(t, err)

	assert.Equal(t, -2, lex.Score("Mi PREOCUPACIÓN principal"))
}

func TestParseLexicon_RejectsMalformedLines(t *testing.T) {
	_, err := ParseLexicon("bien\n")
	assert.Error(t, err)

	_, err = ParseLexicon("bien\tmucho\n")
	assert.Error(t, err)
}

func TestDefaultLexicon_Loads(t *testing.T) {
	lex := DefaultLexicon()

	assert.Positive(t, lex["esperanza"])
	assert.Negative(t, lex["riesgo"])
	assert.Negative(t, lex["preocupacion"])
}

func TestMatchEmotions_Order(t *testing.T) {
	emotions := MatchEmotions("Siento frustración pero estoy CURIOSO")
	assert.Equal(t, []domain.Emotion{domain.EmotionCuriosity, domain.EmotionFrustration}, emotions)
}

func TestMatchEmotions_NoMatch(t *testing.T) {
	assert.Empty(t, MatchEmotions("la tecnología cambia"))
}
